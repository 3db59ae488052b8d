//go:build windows

package hotkey

import (
	"fmt"
	"runtime"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modUser32   = windows.NewLazySystemDLL("user32.dll")
	modKernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procRegisterHotKey     = modUser32.NewProc("RegisterHotKey")
	procUnregisterHotKey   = modUser32.NewProc("UnregisterHotKey")
	procGetMessageW        = modUser32.NewProc("GetMessageW")
	procPostThreadMessageW = modUser32.NewProc("PostThreadMessageW")
	procGetCurrentThreadId = modKernel32.NewProc("GetCurrentThreadId")
)

const (
	modControl  = 0x0002
	modShift    = 0x0004
	modNoRepeat = 0x4000 // no repeat-fire while the combination is held

	wmHotkey = 0x0312
	wmQuit   = 0x0012

	hotkeyID = 1
	vkM      = 0x4D
)

// msg mirrors the Win32 MSG structure for the message pump.
type msg struct {
	HWND    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      struct{ X, Y int32 }
}

// Watcher owns the message-pump thread holding the hotkey registration.
type Watcher struct {
	threadID atomic.Uint32
	done     chan struct{}
}

// Start registers Ctrl+Shift+M system-wide and pumps messages on a dedicated
// locked OS thread. RegisterHotKey binds to the registering thread, so the
// registration and GetMessage loop must share one.
func Start(onToggle func()) (*Watcher, error) {
	w := &Watcher{done: make(chan struct{})}
	regErr := make(chan error, 1)

	go func() {
		defer close(w.done)
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		tid, _, _ := procGetCurrentThreadId.Call()
		w.threadID.Store(uint32(tid))

		ok, _, callErr := procRegisterHotKey.Call(0, hotkeyID, modControl|modShift|modNoRepeat, vkM)
		if ok == 0 {
			regErr <- fmt.Errorf("RegisterHotKey(%s): %v", Combination, callErr)
			return
		}
		regErr <- nil
		defer procUnregisterHotKey.Call(0, hotkeyID)

		var m msg
		for {
			ret, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
			// Zero is WM_QUIT, negative is failure; both end the pump.
			if int32(ret) <= 0 {
				return
			}
			if m.Message == wmHotkey && m.WParam == hotkeyID {
				onToggle()
			}
		}
	}()

	if err := <-regErr; err != nil {
		return nil, err
	}
	return w, nil
}

// Stop unregisters the hotkey by terminating the pump thread and waits for
// it to exit.
func (w *Watcher) Stop() {
	if w == nil {
		return
	}
	if tid := w.threadID.Load(); tid != 0 {
		procPostThreadMessageW.Call(uintptr(tid), wmQuit, 0, 0)
	}
	<-w.done
}
