package host

import (
	"testing"

	authority "github.com/ironforge/authority"
)

func TestInitFacadeOnlyFirstCallWins(t *testing.T) {
	t.Cleanup(ResetFacade)

	core1, err := authority.New().Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	core2, err := authority.New().Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if !InitFacade(core1) {
		t.Fatal("expected first InitFacade call to succeed")
	}
	if InitFacade(core2) {
		t.Fatal("expected second InitFacade call to fail")
	}
	if Facade() != core1 {
		t.Fatal("expected Facade to return the first-installed core")
	}
}

func TestFacadeNilBeforeInit(t *testing.T) {
	t.Cleanup(ResetFacade)

	if Facade() != nil {
		t.Fatal("expected Facade to be nil before InitFacade")
	}
}

func TestResetFacadeAllowsReinstall(t *testing.T) {
	t.Cleanup(ResetFacade)

	core1, err := authority.New().Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	InitFacade(core1)
	ResetFacade()

	core2, err := authority.New().Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if !InitFacade(core2) {
		t.Fatal("expected InitFacade to succeed after ResetFacade")
	}
	if Facade() != core2 {
		t.Fatal("expected Facade to return the reinstalled core")
	}
}
