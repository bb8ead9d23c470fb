package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/joshua-takyi/devlink/internal/client"
	"github.com/joshua-takyi/devlink/internal/validation"
)

const usage = `usage: devlink <command> [args]

commands:
  register -name N -email E -password P
  login -email E -password P
  logout
  whoami
  profiles
  profile <handle>
  github <username>
  posts
  post <text>
  like <post-id>
`

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := run(ctx, cfg, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type app struct {
	actions *client.Actions
	store   *client.Store
	api     *client.Client
	out     io.Writer
}

func run(ctx context.Context, cfg *cliConfig, args []string, out io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(out, usage)
		return nil
	}

	api := client.New(cfg.APIURL, nil)
	store := client.NewStore()
	a := &app{
		actions: client.NewActions(api, store, client.FileStorage{Path: cfg.TokenFile}),
		store:   store,
		api:     api,
		out:     out,
	}
	if _, err := a.actions.Bootstrap(); err != nil {
		return err
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "register":
		return a.register(ctx, rest)
	case "login":
		return a.login(ctx, rest)
	case "logout":
		a.actions.LogoutUser()
		fmt.Fprintln(out, "logged out")
		return nil
	case "whoami":
		return a.whoami()
	case "profiles":
		return a.profiles(ctx)
	case "profile":
		if len(rest) != 1 {
			return errors.New("profile needs a handle")
		}
		return a.profile(ctx, rest[0])
	case "github":
		if len(rest) != 1 {
			return errors.New("github needs a username")
		}
		repos, err := a.api.GithubRepos(ctx, rest[0])
		if err != nil {
			return err
		}
		return printJSON(out, repos)
	case "posts":
		return a.posts(ctx)
	case "post":
		if err := a.requireLogin(); err != nil {
			return err
		}
		if err := a.actions.AddPost(ctx, strings.Join(rest, " ")); err != nil {
			return a.explain(err)
		}
		return printJSON(out, a.store.State().Post.Posts[0])
	case "like":
		if len(rest) != 1 {
			return errors.New("like needs a post id")
		}
		if err := a.requireLogin(); err != nil {
			return err
		}
		if err := a.actions.AddLike(ctx, rest[0]); err != nil {
			return a.explain(err)
		}
		fmt.Fprintln(out, "liked")
		return nil
	default:
		fmt.Fprint(out, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) requireLogin() error {
	if !a.store.State().Auth.IsAuthenticated {
		return errors.New("not logged in, run: devlink login")
	}
	return nil
}

// explain prefers the field errors left in the store over the raw error.
func (a *app) explain(err error) error {
	fields := a.store.State().Errors
	if len(fields) == 0 {
		return err
	}
	parts := make([]string, 0, len(fields))
	for k, v := range fields {
		parts = append(parts, k+": "+v)
	}
	return errors.New(strings.Join(parts, "; "))
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	fs.SetOutput(a.out)
	var in validation.RegisterInput
	fs.StringVar(&in.Name, "name", "", "display name")
	fs.StringVar(&in.Email, "email", "", "email address")
	fs.StringVar(&in.Password, "password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	in.Password2 = in.Password

	user, err := a.actions.RegisterUser(ctx, in)
	if err != nil {
		return a.explain(err)
	}
	fmt.Fprintf(a.out, "registered %s <%s>, now run: devlink login\n", user.Name, user.Email)
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(a.out)
	var in validation.LoginInput
	fs.StringVar(&in.Email, "email", "", "email address")
	fs.StringVar(&in.Password, "password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.actions.LoginUser(ctx, in); err != nil {
		return a.explain(err)
	}
	fmt.Fprintf(a.out, "logged in as %s\n", a.store.State().Auth.User.Name)
	return nil
}

func (a *app) whoami() error {
	auth := a.store.State().Auth
	if !auth.IsAuthenticated {
		fmt.Fprintln(a.out, "not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "%s (%s), session until %s\n",
		auth.User.Name, auth.User.ID, auth.User.ExpiresAt.Time.Local().Format(time.Kitchen))
	return nil
}

func (a *app) profiles(ctx context.Context) error {
	if err := a.actions.GetProfiles(ctx); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "HANDLE\tSTATUS\tSKILLS")
	for _, p := range a.store.State().Profile.Profiles {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Handle, p.Status, strings.Join(p.Skills, ", "))
	}
	return tw.Flush()
}

func (a *app) profile(ctx context.Context, handle string) error {
	if err := a.actions.GetProfileByHandle(ctx, handle); err != nil {
		return err
	}
	return printJSON(a.out, a.store.State().Profile.Profile)
}

func (a *app) posts(ctx context.Context) error {
	if err := a.actions.GetPosts(ctx); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tAUTHOR\tLIKES\tTEXT")
	for _, p := range a.store.State().Post.Posts {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", p.ID.Hex(), p.Name, len(p.Likes), p.Text)
	}
	return tw.Flush()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
