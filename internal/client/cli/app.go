package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dmitrijs2005/scpcatalog/internal/client/api"
	"github.com/dmitrijs2005/scpcatalog/internal/client/config"
	"github.com/dmitrijs2005/scpcatalog/internal/client/listview"
	"github.com/dmitrijs2005/scpcatalog/internal/client/search"
	"golang.org/x/term"
)

type App struct {
	config *config.Config
	client *api.Client
	state  *search.State
	engine *listview.Engine
	reader *bufio.Reader
	out    io.Writer
	log    *log.Logger
	width  func() int
}

func NewApp(c *config.Config) (*App, error) {
	app, err := newApp(c, api.NewClient(c), os.Stdin, os.Stdout)
	if err != nil {
		return nil, err
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		app.engine.OnPageChange = func(int) {
			fmt.Fprint(app.out, "\033[H\033[2J")
		}
	}
	return app, nil
}

func newApp(c *config.Config, client *api.Client, in io.Reader, out io.Writer) (*App, error) {
	state := search.NewState()
	ctx := search.WithState(context.Background(), state)

	engine, err := listview.NewEngineFromContext(ctx, client)
	if err != nil {
		return nil, err
	}

	return &App{
		config: c,
		client: client,
		state:  state,
		engine: engine,
		reader: bufio.NewReader(in),
		out:    out,
		log:    log.New(out, "", 0),
		width:  terminalWidth,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.engine.Close()

	fmt.Fprintln(a.out, styleHeader.Render("SCP catalog")+styleMuted.Render(" · "+a.config.ServerURL+" · type 'help' for commands"))
	if err := a.Reload(ctx); err != nil {
		fmt.Fprintln(a.out, styleMuted.Render("Type 'reload' to try again."))
	}

	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) status() string {
	v, err := a.engine.View()
	if err != nil {
		return ""
	}
	s := fmt.Sprintf("[%d/%d]", v.Page, max(v.TotalPages, 1))
	if v.Query != "" {
		s += fmt.Sprintf(" %q", v.Query)
	}
	return s
}
