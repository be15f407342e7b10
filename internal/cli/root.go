package cli

import (
	"io"
	"os"

	"github.com/alexanderramin/showrunner/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Auth         service.AuthService
	Tours        service.TourService
	Crew         service.CrewService
	Schedule     service.ScheduleService
	Tasks        service.TaskService
	Finance      service.FinanceService
	Marketing    service.MarketingService
	Registration service.RegistrationService
	Sourcing     service.SourcingService
	Rider        service.RiderService

	Logger *zap.Logger
	// Gatherer backs the /metrics endpoint of `serve`; nil disables it.
	Gatherer   prometheus.Gatherer
	ServerAddr string

	// IsInteractive reports whether stdin is a terminal. Prompts are only
	// shown when it returns true.
	IsInteractive func() bool

	tourID string
	yes    bool
	stderr io.Writer
}

// Wire binds every service to ws. The rider parser may be backed by an
// unconfigured client; failures then surface through the notifier.
func (a *App) Wire(ws *service.Workspace, parser service.RiderParser) {
	a.Auth = service.NewAuthService(ws)
	a.Tours = service.NewTourService(ws)
	a.Crew = service.NewCrewService(ws)
	a.Schedule = service.NewScheduleService(ws)
	a.Tasks = service.NewTaskService(ws)
	a.Finance = service.NewFinanceService(ws)
	a.Marketing = service.NewMarketingService(ws)
	a.Registration = service.NewRegistrationService(ws)
	a.Sourcing = service.NewSourcingService(ws)
	a.Rider = service.NewRiderService(ws, parser)
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) errOut() io.Writer {
	if a.stderr == nil {
		return os.Stderr
	}
	return a.stderr
}

// NewRootCmd creates the top-level "showrunner" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "showrunner",
		Short:         "Tour management: schedules, crew, budgets and fan registration",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			app.stderr = cmd.ErrOrStderr()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&app.tourID, "tour", "", "Tour ID (defaults to the selected tour)")
	flags.BoolVarP(&app.yes, "yes", "y", false, "Confirm deletes without prompting")

	root.AddCommand(
		newAuthCmd(app),
		newTourCmd(app),
		newCrewCmd(app),
		newEventCmd(app),
		newTaskCmd(app),
		newCommentCmd(app),
		newFinanceCmd(app),
		newWebsiteCmd(app),
		newCampaignCmd(app),
		newFormCmd(app),
		newRFPCmd(app),
		newRiderCmd(app),
		newServeCmd(app),
	)

	return root
}
