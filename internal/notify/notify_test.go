package notify

import "testing"

func TestSilentImplementationsNeverFail(t *testing.T) {
	n, s := Silent()
	if err := n.Notify("title", "body"); err != nil {
		t.Errorf("silent notifier returned %v", err)
	}
	if err := s.Speak("enemy missing"); err != nil {
		t.Errorf("silent speaker returned %v", err)
	}
}

func TestDesktopNotifierExists(t *testing.T) {
	if Desktop() == nil {
		t.Fatal("no desktop notifier for this platform")
	}
}
