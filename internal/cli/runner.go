package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/profile/internal/config"
	"github.com/idilsaglam/profile/internal/editform"
	"github.com/idilsaglam/profile/internal/gateway"
	"github.com/idilsaglam/profile/internal/profileview"
	"github.com/idilsaglam/profile/internal/session"
	"github.com/idilsaglam/profile/internal/ui"
)

// Options carry what main resolved before dispatching.
type Options struct {
	Config config.Config
	Logger *slog.Logger
	Stdin  io.Reader
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

func (o Options) stdin() io.Reader {
	if o.Stdin == nil {
		return os.Stdin
	}
	return o.Stdin
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "edit":
		if len(a) > 1 {
			ui.Fail("usage: profile edit [userId]")
			return 2
		}
		return doEdit(opt, optionalArg(a))

	case "show":
		if len(a) > 1 {
			ui.Fail("usage: profile show [userId]")
			return 2
		}
		return doShow(opt, optionalArg(a))

	case "serve":
		if len(a) != 0 {
			ui.Fail("usage: profile serve")
			return 2
		}
		return doServe(opt)

	case "auth":
		if len(a) == 0 {
			ui.Fail("usage: profile auth <login|logout|status|whoami>")
			return 2
		}
		switch a[0] {
		case "login":
			return doAuthLogin(opt)
		case "logout":
			return doAuthLogout(opt)
		case "status":
			return doAuthStatus(opt)
		case "whoami":
			return doAuthWhoAmI(opt)
		default:
			ui.Fail("usage: profile auth <login|logout|status|whoami>")
			return 2
		}
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(os.Stderr)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Printf(`profile - edit your user profile from the terminal

Usage:
  profile [-api URL] [-theme classic|neon|mono] <subcommand> [args]

Subcommands:
  edit [userId]      Open the edit form (default: the signed-in user)
  show [userId]      Print the profile
  auth <login|logout|status|whoami>   Token authentication
  serve              Run a local user API for development

Environment:
  PROFILE_API_URL, PROFILE_TOKEN, PROFILE_USER_ID, PROFILE_THEME,
  PROFILE_LOG_FILE, PROFILE_DATA_FILE, PROFILE_ADDR (a .env file is read too)

Examples:
  profile serve
  profile auth login
  profile edit
`)
}

func optionalArg(a []string) string {
	if len(a) == 1 {
		return a[0]
	}
	return ""
}

// ensureAuth resolves the session or reports how to get one.
func ensureAuth(opt Options) (*session.Session, int) {
	sess, err := session.Load(opt.Config.Token, opt.Config.UserID)
	if err != nil {
		if errors.Is(err, session.ErrNotLoggedIn) {
			ui.Fail("no token found. Set PROFILE_TOKEN or run `profile auth login`")
			return nil, 2
		}
		ui.Fail("session: " + err.Error())
		return nil, 1
	}
	return sess, 0
}

func resolveUserID(sess *session.Session, arg string) (string, int) {
	if arg != "" {
		return arg, 0
	}
	if sess.UserID == "" {
		ui.Fail("no user id: pass one, set PROFILE_USER_ID or run `profile auth login`")
		return "", 2
	}
	return sess.UserID, 0
}

func newGateway(opt Options) *gateway.Client {
	return gateway.New(opt.Config.APIURL, gateway.WithLogger(opt.logger()))
}

func doEdit(opt Options, userArg string) int {
	sess, code := ensureAuth(opt)
	if code != 0 {
		return code
	}
	userID, code := resolveUserID(sess, userArg)
	if code != 0 {
		return code
	}
	gw := newGateway(opt)

	m := editform.New(gw, *sess, userID, editform.WithLogger(opt.logger()))
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		ui.Fail("tui: " + err.Error())
		return 1
	}
	fm, ok := final.(editform.Model)
	if !ok {
		return 0
	}
	if _, redirected := fm.Redirect(); redirected {
		ui.OK("profile updated")
		return showProfile(opt, gw, sess, fm.State().NavigateTarget)
	}
	if msg := fm.State().Error; msg != "" {
		ui.Fail(msg)
		return 1
	}
	return 0
}

func doShow(opt Options, userArg string) int {
	sess, code := ensureAuth(opt)
	if code != 0 {
		return code
	}
	userID, code := resolveUserID(sess, userArg)
	if code != 0 {
		return code
	}
	return showProfile(opt, newGateway(opt), sess, userID)
}

func showProfile(opt Options, gw editform.Gateway, sess *session.Session, userID string) int {
	u, err := gw.Read(context.Background(), userID, sess.Token)
	if err != nil {
		opt.logger().Warn("show profile failed", "user_id", userID, "err", err)
		ui.Fail("read: " + err.Error())
		return 1
	}
	fmt.Println(profileview.Render(u))
	return 0
}
