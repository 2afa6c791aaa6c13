package bootstrap

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/scapet/scapet-go/internal/domain/guide"
	"github.com/scapet/scapet-go/internal/domain/questionnaire"
	"github.com/scapet/scapet-go/internal/domain/session"
	"github.com/scapet/scapet-go/internal/infra/config"
	apperrors "github.com/scapet/scapet-go/pkg/errors"
)

// App dispatches CLI commands onto the session and guide workflows.
type App struct {
	cfg      *config.Config
	logger   *slog.Logger
	sessions session.Manager
	guides   guide.Service
	out      io.Writer
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, sessions session.Manager, guides guide.Service) *App {
	return &App{
		cfg:      cfg,
		logger:   logger.With("component", "bootstrap"),
		sessions: sessions,
		guides:   guides,
		out:      os.Stdout,
	}
}

// Run restores any persisted session, then executes one command. The
// restore runs before every command so each invocation sees the persisted
// identity, the same way the web client restores on page load.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printUsage()
		return errors.New("missing command")
	}

	if err := a.sessions.Restore(ctx); err != nil {
		a.logger.Warn("session restore failed", "error", err)
	}

	switch args[0] {
	case "register":
		return a.runRegister(ctx, args[1:])
	case "login":
		return a.runLogin(ctx, args[1:])
	case "logout":
		a.sessions.Logout(ctx)
		fmt.Fprintln(a.out, "Sesión cerrada.")
		return nil
	case "whoami":
		return a.runWhoami(ctx)
	case "plan":
		return a.runPlan(ctx, args[1:])
	case "profile":
		return a.runProfile(ctx, args[1:])
	default:
		a.printUsage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (a *App) runRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fullName := fs.String("name", "", "full name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.sessions.Register(ctx, *email, *password, *fullName); err != nil {
		fmt.Fprintln(a.out, apperrors.UserMessage(err))
		return err
	}
	return a.runWhoami(ctx)
}

func (a *App) runLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.sessions.Login(ctx, *email, *password); err != nil {
		fmt.Fprintln(a.out, apperrors.UserMessage(err))
		return err
	}
	return a.runWhoami(ctx)
}

func (a *App) runWhoami(_ context.Context) error {
	user, ok := a.sessions.CurrentUser()
	if !ok {
		fmt.Fprintln(a.out, "No has iniciado sesión.")
		return session.ErrNoSession
	}
	fmt.Fprintf(a.out, "%s <%s>\n", user.FullName, user.Email)
	fmt.Fprintf(a.out, "Créditos: %d\n", user.Credits)
	if exp, ok := a.sessions.TokenExpiry(); ok {
		fmt.Fprintf(a.out, "Sesión válida hasta: %s\n", exp.Local().Format(time.RFC1123))
	}
	return nil
}

func (a *App) runPlan(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("plan", flag.ContinueOnError)
	destination := fs.String("destination", "", "city to visit")
	from := fs.String("from", "", "start date (YYYY-MM-DD)")
	to := fs.String("to", "", "end date (YYYY-MM-DD)")
	interests := fs.String("interests", "", "comma-separated interest labels")
	tripTypes := fs.String("trip-types", "", "comma-separated category tags")
	budget := fs.Int("budget", 0, "numeric budget")
	budgetLevel := fs.String("budget-level", "", "low, medium or high")
	travelType := fs.String("travel-type", "", "solo, couple, family or group")
	dislikes := fs.String("dislikes", "", "things to avoid, comma-separated")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form := questionnaire.Form{
		Destination:       *destination,
		SelectedInterests: splitList(*interests),
		TripTypes:         splitList(*tripTypes),
		Budget:            *budget,
		BudgetLevel:       *budgetLevel,
		TravelType:        *travelType,
		Dislikes:          *dislikes,
	}
	if *budget > 0 {
		yes := true
		form.HasBudget = &yes
	} else if *budgetLevel != "" {
		no := false
		form.HasBudget = &no
	}
	if parsed, err := parseDate(*from); err == nil {
		form.DateFrom = parsed
	}
	if parsed, err := parseDate(*to); err == nil {
		form.DateTo = parsed
	}

	if !a.sessions.Authenticated() {
		fmt.Fprintln(a.out, "Tu sesión ha expirado. Por favor inicia sesión nuevamente.")
		return session.ErrNoSession
	}

	itinerary, err := a.guides.Generate(ctx, form)
	if err != nil {
		var verr *guide.ValidationError
		if errors.As(err, &verr) {
			for field, msg := range verr.Fields {
				fmt.Fprintf(a.out, "%s: %s\n", field, msg)
			}
			return err
		}
		fmt.Fprintln(a.out, session.Translate(err))
		return err
	}

	a.renderItinerary(itinerary)
	fmt.Fprintf(a.out, "\nCréditos restantes: %d\n", a.sessions.Credits())
	return nil
}

func (a *App) runProfile(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: profile [update|passwd]")
	}
	switch args[0] {
	case "update":
		fs := flag.NewFlagSet("profile update", flag.ContinueOnError)
		name := fs.String("name", "", "new full name")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if err := a.sessions.UpdateProfile(ctx, *name); err != nil {
			fmt.Fprintln(a.out, apperrors.UserMessage(err))
			return err
		}
		fmt.Fprintln(a.out, "Perfil actualizado.")
		return nil
	case "passwd":
		fs := flag.NewFlagSet("profile passwd", flag.ContinueOnError)
		current := fs.String("current", "", "current password")
		next := fs.String("new", "", "new password")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if err := a.sessions.ChangePassword(ctx, *current, *next); err != nil {
			fmt.Fprintln(a.out, apperrors.UserMessage(err))
			return err
		}
		fmt.Fprintln(a.out, "Contraseña actualizada.")
		return nil
	default:
		return fmt.Errorf("unknown profile subcommand %q", args[0])
	}
}

func (a *App) renderItinerary(itinerary guide.Itinerary) {
	if itinerary.City != "" {
		fmt.Fprintf(a.out, "Itinerario para %s\n", itinerary.City)
	}
	for _, day := range itinerary.Guide {
		fmt.Fprintf(a.out, "\nDía %d: %s (%s, ritmo %s)\n", day.Day, day.Title, day.Zone, day.Pace)
		for _, tip := range day.DailyTips {
			fmt.Fprintf(a.out, "  Tip: %s\n", tip)
		}
		for _, act := range day.Schedule {
			fmt.Fprintf(a.out, "  %s  %s (%d min, %s)\n", act.Time, act.Place, act.DurationMinutes, act.ActivityType)
			if act.Reason != "" {
				fmt.Fprintf(a.out, "        %s\n", act.Reason)
			}
		}
	}
}

func (a *App) printUsage() {
	fmt.Fprintln(a.out, "usage: scapet <command>")
	fmt.Fprintln(a.out, "commands: register, login, logout, whoami, plan, profile")
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

func parseDate(raw string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(raw))
}
