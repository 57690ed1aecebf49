package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/krono-coffee/ordering-client/pkg/api"
	"github.com/krono-coffee/ordering-client/pkg/global"
	"github.com/krono-coffee/ordering-client/pkg/models"
	"github.com/krono-coffee/ordering-client/pkg/orders"
)

const helpText = `Commands:
  login <email> <password>        sign in
  register <id> <doc-type> <username> <email> <password> <full name>
  logout                          sign out
  whoami                          show the current identity
  menu [category]                 show the menu, optionally filtered
  categories                      list menu categories
  refresh                         re-fetch the menu
  add <item-id>                   add a menu item to the cart
  remove <item-id>                remove a line from the cart
  cart                            show the cart
  order                           place the order
  mine                            show my order history
  orders                          staff: list all orders
  status <order-id> <completed|cancelled>   staff: transition an order
  offers                          list current promotions
  item-add <name> <price> <category> [description]   admin: create item
  item-avail <item-id> <true|false>                  admin: availability
  quit`

// Run drives the interactive loop. Commands execute one at a time, so an
// in-flight request can never be doubled by a second trigger.
func Run(app *App, in io.Reader, out io.Writer) error {
	if identity, ok := app.Session.Restore(); ok {
		fmt.Fprintf(out, "Signed in as %s (%s)\n", identity.Subject, identity.Role)
	}
	if err := refreshMenu(app, out); err != nil {
		fmt.Fprintf(out, "Could not load the menu: %v\n", err)
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return nil
		}
		if err := dispatch(app, out, fields[0], fields[1:]); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
	}
}

func dispatch(app *App, out io.Writer, command string, args []string) error {
	switch command {
	case "help":
		fmt.Fprintln(out, helpText)
		return nil
	case "login":
		return doLogin(app, out, args)
	case "register":
		return doRegister(app, out, args)
	case "logout":
		return doLogout(app, out)
	case "whoami":
		return doWhoami(app, out)
	case "menu":
		return doMenu(app, out, args)
	case "categories":
		fmt.Fprintln(out, strings.Join(app.Menu.Categories(), ", "))
		return nil
	case "refresh":
		return refreshMenu(app, out)
	case "add":
		return doAdd(app, out, args)
	case "remove":
		return doRemove(app, out, args)
	case "cart":
		return doShowCart(app, out)
	case "order":
		return doOrder(app, out)
	case "mine":
		return doMyOrders(app, out)
	case "orders":
		return doListOrders(app, out)
	case "status":
		return doSetStatus(app, out, args)
	case "offers":
		return doOffers(app, out)
	case "item-add":
		return doItemAdd(app, out, args)
	case "item-avail":
		return doItemAvail(app, out, args)
	default:
		return fmt.Errorf("unknown command %q (try help)", command)
	}
}

func refreshMenu(app *App, out io.Writer) error {
	ctx, cancel := global.GetDefaultTimer()
	defer cancel()
	if err := app.Menu.Refresh(ctx); err != nil {
		return err
	}
	fmt.Fprintf(out, "Menu loaded: %d items\n", len(app.Menu.Items()))
	return nil
}

func doLogin(app *App, out io.Writer, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: login <email> <password>")
	}
	form := url.Values{}
	form.Set("username", args[0])
	form.Set("password", args[1])

	ctx, cancel := global.GetDefaultTimer()
	defer cancel()
	raw, err := app.Client.Request(ctx, http.MethodPost, "/auth/token", form, false, api.EncodingForm)
	if err != nil {
		return err
	}
	var token models.TokenResponse
	if err := decode(raw, &token); err != nil {
		return err
	}
	identity, err := app.Session.Login(token.AccessToken)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Welcome back, %s (%s)\n", identity.Subject, identity.Role)
	return nil
}

func doRegister(app *App, out io.Writer, args []string) error {
	if len(args) < 6 {
		return errors.New("usage: register <id> <doc-type> <username> <email> <password> <full name>")
	}
	req := models.RegisterRequest{
		ID:           args[0],
		DocumentType: args[1],
		Username:     args[2],
		Email:        args[3],
		Password:     args[4],
		FullName:     strings.Join(args[5:], " "),
	}
	ctx, cancel := global.GetDefaultTimer()
	defer cancel()
	if _, err := app.Client.Request(ctx, http.MethodPost, "/auth/register", req, false, api.EncodingJSON); err != nil {
		return err
	}
	fmt.Fprintln(out, "Registered. Please sign in with your new credentials.")
	return nil
}

func doLogout(app *App, out io.Writer) error {
	if err := app.Session.Logout(); err != nil {
		return err
	}
	app.Cart.Clear()
	fmt.Fprintln(out, "Signed out.")
	return nil
}

func doWhoami(app *App, out io.Writer) error {
	identity, ok := app.Session.Current()
	if !ok {
		fmt.Fprintln(out, "Not signed in.")
		return nil
	}
	fmt.Fprintf(out, "%s (%s)\n", identity.Subject, identity.Role)
	return nil
}

func doMenu(app *App, out io.Writer, args []string) error {
	category := "all"
	if len(args) > 0 {
		category = args[0]
	}
	items := app.Menu.FilteredBy(category)
	if len(items) == 0 {
		fmt.Fprintln(out, "No items in this category.")
		return nil
	}
	for _, item := range items {
		marker := ""
		if !item.IsAvailable {
			marker = "  (unavailable)"
		}
		fmt.Fprintf(out, "%4d  %-28s $%s  [%s]%s\n",
			item.ID, item.Name, item.Price.StringFixed(2), item.Category, marker)
	}
	return nil
}

func doAdd(app *App, out io.Writer, args []string) error {
	if !app.Session.CanCheckout() {
		fmt.Fprintln(out, "Please sign in as a client to manage your cart.")
		return nil
	}
	id, err := parseID(args)
	if err != nil {
		return err
	}
	for _, item := range app.Menu.Items() {
		if item.ID == id {
			app.Cart.AddItem(item)
			fmt.Fprintf(out, "%s added to cart.\n", item.Name)
			return nil
		}
	}
	return fmt.Errorf("no menu item with id %d", id)
}

func doRemove(app *App, out io.Writer, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	app.Cart.RemoveItem(id)
	return doShowCart(app, out)
}

func doShowCart(app *App, out io.Writer) error {
	if !app.Session.CanCheckout() {
		fmt.Fprintln(out, "Please sign in as a client to manage your cart.")
		return nil
	}
	lines := app.Cart.Lines()
	if len(lines) == 0 {
		fmt.Fprintln(out, "Your cart is empty.")
		return nil
	}
	for _, line := range lines {
		fmt.Fprintf(out, "%-28s x%d  $%s\n", line.Name, line.Quantity, line.Subtotal().StringFixed(2))
	}
	fmt.Fprintf(out, "Total: $%s\n", app.Cart.Total().StringFixed(2))
	return nil
}

func doOrder(app *App, out io.Writer) error {
	if !app.Session.CanCheckout() {
		fmt.Fprintln(out, "Please sign in as a client to place an order.")
		return nil
	}
	ctx, cancel := global.GetDefaultTimer()
	defer cancel()
	receipt, err := app.Orders.Submit(ctx, app.Cart)
	if err != nil {
		return err
	}
	app.Cart.Clear()
	identity, _ := app.Session.Current()
	fmt.Fprint(out, orders.FormatReceipt(receipt, identity.Subject))
	return nil
}

func doMyOrders(app *App, out io.Writer) error {
	ctx, cancel := global.GetDefaultTimer()
	defer cancel()
	list, err := app.Orders.MyOrders(ctx)
	if err != nil {
		return err
	}
	printOrders(out, list)
	return nil
}

func doListOrders(app *App, out io.Writer) error {
	if !app.Session.CanManageOrders() {
		fmt.Fprintln(out, "Only staff can view the order dashboard.")
		return nil
	}
	ctx, cancel := global.GetDefaultTimer()
	defer cancel()
	list, err := app.Orders.ListAll(ctx)
	if err != nil {
		return err
	}
	printOrders(out, list)
	return nil
}

func doSetStatus(app *App, out io.Writer, args []string) error {
	if !app.Session.CanManageOrders() {
		fmt.Fprintln(out, "Only staff can change order status.")
		return nil
	}
	if len(args) != 2 {
		return errors.New("usage: status <order-id> <completed|cancelled>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid order id %q", args[0])
	}
	ctx, cancel := global.GetDefaultTimer()
	defer cancel()
	if err := app.Orders.SetStatus(ctx, id, models.OrderStatus(args[1])); err != nil {
		return err
	}
	fmt.Fprintf(out, "Order #%d marked %s.\n", id, args[1])
	// The local list is a display cache: re-fetch instead of patching it.
	return doListOrders(app, out)
}

func doOffers(app *App, out io.Writer) error {
	ctx, cancel := global.GetDefaultTimer()
	defer cancel()
	offers, err := app.Menu.Offers(ctx)
	if err != nil {
		return err
	}
	if len(offers) == 0 {
		fmt.Fprintln(out, "No promotions right now.")
		return nil
	}
	for _, offer := range offers {
		fmt.Fprintf(out, "%s: %.0f%% off (until %s)\n",
			offer.Name, offer.DiscountPercentage, offer.EndDate.Local().Format("2006-01-02"))
	}
	return nil
}

func doItemAdd(app *App, out io.Writer, args []string) error {
	if !app.Session.CanManageMenu() {
		fmt.Fprintln(out, "Only admins can create menu items.")
		return nil
	}
	if len(args) < 3 {
		return errors.New("usage: item-add <name> <price> <category> [description]")
	}
	price, err := decimal.NewFromString(args[1])
	if err != nil {
		return fmt.Errorf("invalid price %q", args[1])
	}
	req := models.CreateMenuItemRequest{
		Name:        args[0],
		Price:       price,
		Category:    args[2],
		Description: strings.Join(args[3:], " "),
		IsAvailable: true,
	}
	ctx, cancel := global.GetDefaultTimer()
	defer cancel()
	item, err := app.Menu.Create(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Created menu item #%d %s\n", item.ID, item.Name)
	return refreshMenu(app, out)
}

func doItemAvail(app *App, out io.Writer, args []string) error {
	if !app.Session.CanManageMenu() {
		fmt.Fprintln(out, "Only admins can change item availability.")
		return nil
	}
	if len(args) != 2 {
		return errors.New("usage: item-avail <item-id> <true|false>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid item id %q", args[0])
	}
	available, err := strconv.ParseBool(args[1])
	if err != nil {
		return fmt.Errorf("invalid availability %q", args[1])
	}
	ctx, cancel := global.GetDefaultTimer()
	defer cancel()
	item, err := app.Menu.SetAvailability(ctx, id, available)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Item #%d availability set to %t\n", item.ID, item.IsAvailable)
	return refreshMenu(app, out)
}

func printOrders(out io.Writer, list []models.Order) {
	if len(list) == 0 {
		fmt.Fprintln(out, "No orders.")
		return
	}
	for _, order := range list {
		fmt.Fprintf(out, "#%d  %-16s $%s  %s  %s\n",
			order.ID, order.Customer, order.Total.StringFixed(2),
			strings.ToUpper(string(order.Status)),
			order.Timestamp.Local().Format("15:04"))
		for _, item := range order.Items {
			fmt.Fprintf(out, "      %s x%d\n", item.Name, item.Quantity)
		}
	}
}

func parseID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errors.New("usage: <command> <item-id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid item id %q", args[0])
	}
	return id, nil
}

func decode(raw []byte, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
