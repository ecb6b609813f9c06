package cli

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/idilsaglam/profile/internal/session"
	"github.com/idilsaglam/profile/internal/ui"
)

func doAuthLogin(opt Options) int {
	in := bufio.NewReader(opt.stdin())

	fmt.Print("Paste your token: ")
	token, err := readLine(in)
	if err != nil {
		ui.Fail("read token: " + err.Error())
		return 1
	}
	fmt.Print("User id (blank to read it from the token): ")
	userID, err := readLine(in)
	if err != nil {
		ui.Fail("read user id: " + err.Error())
		return 1
	}

	var expires *time.Time
	if c, err := session.DecodeClaims(token); err == nil {
		expires = c.ExpiresAt
		if userID == "" {
			userID = c.UserID
		}
	}
	if err := session.Save(token, userID, expires); err != nil {
		ui.Fail("save token: " + err.Error())
		return 1
	}
	ui.OK("logged in")
	if userID == "" {
		fmt.Println(ui.Current().Muted.Render("no user id stored; pass one to `profile edit` or set PROFILE_USER_ID"))
	}
	return 0
}

func readLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func doAuthLogout(opt Options) int {
	if strings.TrimSpace(opt.Config.Token) != "" {
		ui.OK("token is provided by PROFILE_TOKEN env var (nothing to delete)")
		return 0
	}
	if err := session.Delete(); err != nil {
		ui.Fail("logout: " + err.Error())
		return 1
	}
	ui.OK("logged out")
	return 0
}

func doAuthStatus(opt Options) int {
	sess, err := session.Load(opt.Config.Token, opt.Config.UserID)
	if err != nil {
		fmt.Println(ui.Current().Muted.Render("not logged in"))
		fmt.Println("Run: profile auth login")
		return 0
	}
	fmt.Printf("source: %s\n", sess.Source)
	if sess.UserID != "" {
		fmt.Printf("user: %s\n", sess.UserID)
	} else {
		fmt.Println("user: (unknown)")
	}
	if sess.ExpiresAt != nil {
		fmt.Printf("expires: %s\n", sess.ExpiresAt.UTC().Format(time.RFC3339))
	} else {
		fmt.Println("expires: (unknown)")
	}
	fmt.Println("env override: PROFILE_TOKEN")
	return 0
}

// whoami decodes a JWT locally (unsigned); opaque tokens print basic info.
func doAuthWhoAmI(opt Options) int {
	sess, code := ensureAuth(opt)
	if code != 0 {
		return code
	}
	if c, err := session.DecodeClaims(sess.Token); err == nil {
		fmt.Println("JWT payload:")
		fmt.Println(c.Raw)
		return 0
	}
	fmt.Println("Opaque token (cannot introspect locally).")
	fmt.Println("source:", sess.Source)
	if sess.UserID != "" {
		fmt.Println("user:", sess.UserID)
	}
	return 0
}
