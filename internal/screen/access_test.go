package screen

import (
	"errors"
	"fmt"
	"testing"

	"techmarket/internal/domain"
	"techmarket/internal/repository"
	"techmarket/internal/service"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestClientEntryOpensProductList(t *testing.T) {
	f := newFixture(t)

	if alert := f.access.ClientEntry(); !alert.Empty() {
		t.Fatalf("unexpected alert %v", alert)
	}
	if got := f.nav.Current(); got != domain.RouteProducts {
		t.Errorf("expected %s, got %s", domain.RouteProducts, got)
	}
}

func TestLoginWrongPasswordShowsAccessDenied(t *testing.T) {
	f := newFixture(t)
	f.access.ToggleAdmin()
	f.access.SetName("root")
	f.access.SetSenha("wrong")

	alert := f.access.Login()

	if alert.Title != "Access Error" || alert.Message != service.MsgAccessDenied {
		t.Errorf("unexpected alert %v", alert)
	}
	if got := f.nav.Current(); got != domain.RouteAccess {
		t.Errorf("expected to stay on %s, got %s", domain.RouteAccess, got)
	}
	if _, name, senhaFilled, _ := f.access.State(); senhaFilled || name != "root" {
		t.Errorf("expected senha cleared and name kept, got name=%q senhaFilled=%v", name, senhaFilled)
	}
}

func TestLoginSuccessOpensManagement(t *testing.T) {
	f := newFixture(t)
	f.access.ToggleAdmin()
	f.access.SetName("root")
	f.access.SetSenha("toor")

	if alert := f.access.Login(); !alert.Empty() {
		t.Fatalf("unexpected alert %v", alert)
	}
	if got := f.nav.Current(); got != domain.RouteManagement {
		t.Errorf("expected %s, got %s", domain.RouteManagement, got)
	}
	if session := f.access.Session(); session == nil || session.Name != "root" {
		t.Errorf("unexpected session %+v", session)
	}
	if _, _, senhaFilled, _ := f.access.State(); senhaFilled {
		t.Error("senha should be cleared after login")
	}
}

func TestLoginStoreFailureShowsConnectivityMessage(t *testing.T) {
	f := newFixture(t)
	f.admins.err = errors.New("dial tcp: connection refused")
	f.access.ToggleAdmin()
	f.access.SetName("root")
	f.access.SetSenha("toor")

	alert := f.access.Login()
	if alert.Level != LevelError || alert.Message != service.MsgStoreUnavailable {
		t.Errorf("unexpected alert %v", alert)
	}
}

func TestLoginPermissionFailureIsGenericConnectivityError(t *testing.T) {
	f := newFixture(t)
	f.admins.err = fmt.Errorf("failed to find admin: %w", repository.ErrPermissionDenied)
	f.access.ToggleAdmin()
	f.access.SetName("root")
	f.access.SetSenha("toor")

	alert := f.access.Login()
	if alert.Title != "Error" || alert.Message != service.MsgStoreUnavailable {
		t.Errorf("unexpected alert %v", alert)
	}
}

func TestLoginRequiresOpenAdminArea(t *testing.T) {
	f := newFixture(t)

	if alert := f.access.SetName("root"); alert.Message != MsgAdminAreaClosed {
		t.Errorf("unexpected alert %v", alert)
	}
	if alert := f.access.Login(); alert.Message != MsgAdminAreaClosed {
		t.Errorf("unexpected alert %v", alert)
	}
}

// Whatever the outcome, the password field is empty after an attempt.
func TestProperty_SenhaClearedAfterEveryAttempt(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("senha is empty after login", prop.ForAll(
		func(name, senha string) bool {
			f := newFixture(t)
			f.access.ToggleAdmin()
			f.access.SetName(name)
			f.access.SetSenha(senha)

			alert := f.access.Login()
			_, _, senhaFilled, loading := f.access.State()

			if name == "" || senha == "" {
				if alert.Message != service.MsgLoginFieldsRequired {
					return false
				}
			}
			return !senhaFilled && !loading
		},
		gen.OneConstOf("", "root", "guest"),
		gen.OneConstOf("", "toor", "wrong"),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
