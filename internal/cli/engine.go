package cli

import (
	"log"

	"github.com/krono-coffee/ordering-client/pkg/api"
	"github.com/krono-coffee/ordering-client/pkg/cart"
	"github.com/krono-coffee/ordering-client/pkg/global"
	"github.com/krono-coffee/ordering-client/pkg/menu"
	"github.com/krono-coffee/ordering-client/pkg/orders"
	"github.com/krono-coffee/ordering-client/pkg/session"
)

// App wires the client components together. It is the rendering surface
// of the ordering client: every component change it observes ends up as
// terminal output, nothing more.
type App struct {
	Session *session.Session
	Client  *api.Client
	Menu    *menu.Cache
	Cart    *cart.Cart
	Orders  *orders.Workflow
}

func NewApp() *App {
	store := buildTokenStore()
	client := api.NewClient(global.GetAPIBase(), store)
	return &App{
		Session: session.New(store),
		Client:  client,
		Menu:    menu.NewCache(client),
		Cart:    cart.New(),
		Orders:  orders.NewWorkflow(client),
	}
}

func buildTokenStore() session.TokenStore {
	switch global.GetEnvOrDefault("TOKEN_STORE", "file") {
	case "redis":
		log.Println("Using Redis credential store")
		return session.NewRedisStore("krono:access_token")
	default:
		return session.NewFileStore(global.GetTokenPath())
	}
}
