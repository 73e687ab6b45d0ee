package screen

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"techmarket/internal/domain"

	"go.uber.org/zap"
)

var helpByRoute = map[domain.Route]string{
	domain.RouteAccess: `  client                 browse the products
  admin                  show or hide the admin login
  set name|senha <value> fill a login field
  login                  log in as admin
  show                   show the login form`,
	domain.RouteProducts: `  refresh                fetch the products again
  back                   return to the access screen`,
	domain.RouteManagement: `  set <field> <value>    fill id, title, price, description or image
  show                   show the form
  add                    add a product (all fields but id)
  update                 update the product with the given id
  delete                 delete the product with the given id
  clear                  clear the form
  back                   return to the access screen`,
}

// Console drives the screens from line commands.
type Console struct {
	nav    *Navigator
	access *AccessScreen
	list   *ListScreen
	manage *ManageScreen
	out    io.Writer
	logger *zap.Logger
}

// NewConsole creates a new instance of Console writing to out
func NewConsole(nav *Navigator, access *AccessScreen, list *ListScreen, manage *ManageScreen, out io.Writer, logger *zap.Logger) *Console {
	return &Console{nav: nav, access: access, list: list, manage: manage, out: out, logger: logger}
}

// Run reads commands from in until quit, EOF or ctx is done.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	fmt.Fprintln(c.out, "TECHMARKET - type help for commands")
	c.prompt()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					return err
				default:
					return nil
				}
			}
			if quit := c.Execute(line); quit {
				return nil
			}
			c.prompt()
		}
	}
}

func (c *Console) prompt() {
	fmt.Fprintf(c.out, "techmarket:%s> ", c.nav.Current())
}

// Execute runs one command line and reports whether the user asked to quit.
func (c *Console) Execute(line string) bool {
	cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "":
		return false
	case "quit", "exit":
		return true
	case "help":
		fmt.Fprintf(c.out, "Commands on %s:\n%s\n  help\n  quit\n", c.nav.Current(), helpByRoute[c.nav.Current()])
		return false
	}

	c.logger.Debug("Command", zap.String("route", string(c.nav.Current())), zap.String("command", cmd))

	switch c.nav.Current() {
	case domain.RouteAccess:
		c.executeAccess(cmd, rest)
	case domain.RouteProducts:
		c.executeProducts(cmd)
	case domain.RouteManagement:
		c.executeManagement(cmd, rest)
	}
	return false
}

func (c *Console) executeAccess(cmd, rest string) {
	switch cmd {
	case "client":
		c.show(c.access.ClientEntry())
		c.arrive()
	case "admin":
		c.show(c.access.ToggleAdmin())
		c.showAccess()
	case "set":
		field, value := splitField(rest)
		switch field {
		case "name":
			c.show(c.access.SetName(value))
		case "senha", "password":
			c.show(c.access.SetSenha(value))
		default:
			c.unknownField(field)
		}
	case "login":
		c.show(c.access.Login())
		c.arrive()
	case "show":
		c.showAccess()
	default:
		c.unknownCommand(cmd)
	}
}

func (c *Console) executeProducts(cmd string) {
	switch cmd {
	case "refresh":
		c.arrive()
	case "back":
		c.nav.Navigate(domain.RouteAccess)
	default:
		c.unknownCommand(cmd)
	}
}

func (c *Console) executeManagement(cmd, rest string) {
	switch cmd {
	case "set":
		field, value := splitField(rest)
		if err := c.manage.Set(Field(field), value); err != nil {
			fmt.Fprintln(c.out, err)
		}
	case "show":
		c.showForm()
	case "add":
		c.show(c.manage.Add())
	case "update":
		c.show(c.manage.Update())
	case "delete":
		c.show(c.manage.Delete())
	case "clear":
		c.show(c.manage.Clear())
	case "back":
		c.manage.Back()
	default:
		c.unknownCommand(cmd)
	}
}

// arrive renders the screen the last command landed on.
func (c *Console) arrive() {
	switch c.nav.Current() {
	case domain.RouteProducts:
		c.list.Focus()
		if err := c.list.Render(c.out); err != nil {
			c.logger.Warn("Failed to render product list", zap.Error(err))
		}
	case domain.RouteManagement:
		if session := c.access.Session(); session != nil {
			fmt.Fprintf(c.out, "Logged in as %s\n", session.Name)
		}
		c.showForm()
	}
}

func (c *Console) show(alert Alert) {
	if !alert.Empty() {
		fmt.Fprintln(c.out, alert)
	}
}

func (c *Console) showAccess() {
	adminOpen, name, senhaFilled, _ := c.access.State()
	if !adminOpen {
		fmt.Fprintln(c.out, "Admin area closed")
		return
	}
	senha := ""
	if senhaFilled {
		senha = "********"
	}
	fmt.Fprintf(c.out, "name:  %s\nsenha: %s\n", name, senha)
}

func (c *Console) showForm() {
	form := c.manage.Form()
	values := map[Field]string{
		FieldID:          form.ID,
		FieldTitle:       form.Title,
		FieldPrice:       form.Price,
		FieldDescription: form.Description,
		FieldImage:       form.Image,
	}
	for _, field := range Fields {
		fmt.Fprintf(c.out, "%-12s %s\n", field+":", values[field])
	}
}

func (c *Console) unknownCommand(cmd string) {
	fmt.Fprintf(c.out, "Unknown command %q. Type help.\n", cmd)
}

func (c *Console) unknownField(field string) {
	fmt.Fprintf(c.out, "Unknown field %q.\n", field)
}

func splitField(rest string) (field, value string) {
	field, value, _ = strings.Cut(rest, " ")
	return field, strings.TrimSpace(value)
}
