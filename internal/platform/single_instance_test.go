package platform

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func acquireTestGuard(t *testing.T) (string, *InstanceGuard) {
	t.Helper()
	for attempt := 0; attempt < 20; attempt++ {
		name := fmt.Sprintf("%s-%d-%d", t.Name(), time.Now().UnixNano(), attempt)
		guard, err := AcquireSingleInstance(name)
		if err == nil {
			t.Cleanup(func() { _ = guard.Release() })
			return name, guard
		}
	}
	t.Skip("no free port for the instance guard")
	return "", nil
}

func TestSecondInstanceIsRejected(t *testing.T) {
	name, guard := acquireTestGuard(t)

	if _, err := AcquireSingleInstance(name); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("second acquire err = %v, want ErrAlreadyRunning", err)
	}

	if err := guard.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	if err := guard.Release(); err != nil {
		t.Fatalf("second release: %v", err)
	}

	again, err := AcquireSingleInstance(name)
	if err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
	_ = again.Release()
}

func TestNotifyRunningShowsWindow(t *testing.T) {
	name, guard := acquireTestGuard(t)

	shown := make(chan struct{}, 1)
	go guard.Serve(func() { shown <- struct{}{} })

	if err := NotifyRunning(name); err != nil {
		t.Fatalf("notify: %v", err)
	}
	select {
	case <-shown:
	case <-time.After(2 * time.Second):
		t.Fatal("running instance was not asked to show")
	}
}

func TestPortFromNameIsStable(t *testing.T) {
	first := portFromName("Pomodial")
	if first != portFromName("Pomodial") {
		t.Fatal("port is not deterministic")
	}
	if first < 20000 || first > 39999 {
		t.Fatalf("port %d out of range", first)
	}
}

func TestNilGuard(t *testing.T) {
	var guard *InstanceGuard
	if err := guard.Release(); err != nil {
		t.Fatalf("nil release: %v", err)
	}
	if guard.Address() != "" {
		t.Fatal("nil guard has an address")
	}
	guard.Serve(nil)
}
