package main

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/shop-inventory/internal/client"
)

// APIURLEnv URL base de la API.
const APIURLEnv = "SHOPCTL_API_URL"

const defaultAPIURL = "http://localhost:8080"

var errNotLoggedIn = errors.New("no hay sesión activa; ejecute 'shopctl login'")

// app estado compartido por los comandos: cliente HTTP y sesión rehidratada.
type app struct {
	out     io.Writer
	apiURL  string
	store   client.SessionStore
	session *client.Session
	api     *client.Client
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}

	root := &cobra.Command{
		Use:           "shopctl",
		Short:         "Cliente del inventario de la tienda",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&a.apiURL, "api", envOr(APIURLEnv, defaultAPIURL), "URL base de la API")

	root.AddCommand(
		a.registerCmd(),
		a.loginCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.dashboardCmd(),
		a.inventoryCmd(),
		a.productsCmd(),
		a.reportCmd(),
	)
	return root
}

func (a *app) init() error {
	if a.store == nil {
		path, err := client.DefaultSessionPath()
		if err != nil {
			return err
		}
		a.store = client.NewFileStore(path)
	}
	sess, err := a.store.Load()
	if err != nil {
		return err
	}
	a.session = sess
	a.api = client.New(a.apiURL)
	a.api.SetToken(sess.Token)
	return nil
}

func (a *app) requireSession() error {
	if !a.session.LoggedIn() {
		return errNotLoggedIn
	}
	return nil
}

// check traduce un 401 en un aviso de sesión expirada y la limpia.
func (a *app) check(err error) error {
	if err == nil {
		return nil
	}
	if client.IsUnauthorized(err) && a.session.LoggedIn() {
		_ = a.store.Clear()
		return errors.New("la sesión expiró o no es válida; ejecute 'shopctl login'")
	}
	return err
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
