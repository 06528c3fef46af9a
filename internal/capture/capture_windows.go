//go:build windows

package capture

import (
	"fmt"
	"image"
	"syscall"
	"unsafe"
)

var (
	user32 = syscall.NewLazyDLL("user32.dll")
	gdi32  = syscall.NewLazyDLL("gdi32.dll")

	procGetDC                  = user32.NewProc("GetDC")
	procReleaseDC              = user32.NewProc("ReleaseDC")
	procGetClientRect          = user32.NewProc("GetClientRect")
	procCreateCompatibleDC     = gdi32.NewProc("CreateCompatibleDC")
	procCreateCompatibleBitmap = gdi32.NewProc("CreateCompatibleBitmap")
	procSelectObject           = gdi32.NewProc("SelectObject")
	procBitBlt                 = gdi32.NewProc("BitBlt")
	procDeleteDC               = gdi32.NewProc("DeleteDC")
	procDeleteObject           = gdi32.NewProc("DeleteObject")
	procGetDIBits              = gdi32.NewProc("GetDIBits")
)

const srcCopy = 0x00CC0020

type winRect struct {
	Left, Top, Right, Bottom int32
}

type bitmapInfoHeader struct {
	Size          uint32
	Width         int32
	Height        int32
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
}

type bitmapInfo struct {
	Header bitmapInfoHeader
	Colors [1]uint32
}

// WindowCapturer grabs the client area of a native window via GDI BitBlt.
type WindowCapturer struct {
	hwnd   uintptr
	width  int
	height int
}

// NewWindowCapturer creates a capturer for the given window handle.
func NewWindowCapturer(hwnd uintptr) (*WindowCapturer, error) {
	if hwnd == 0 {
		return nil, fmt.Errorf("invalid window handle")
	}
	wc := &WindowCapturer{hwnd: hwnd}
	if err := wc.refreshDimensions(); err != nil {
		return nil, err
	}
	return wc, nil
}

func (wc *WindowCapturer) refreshDimensions() error {
	var rect winRect
	ret, _, err := procGetClientRect.Call(wc.hwnd, uintptr(unsafe.Pointer(&rect)))
	if ret == 0 {
		return fmt.Errorf("GetClientRect: %v", err)
	}
	wc.width = int(rect.Right - rect.Left)
	wc.height = int(rect.Bottom - rect.Top)
	if wc.width <= 0 || wc.height <= 0 {
		return fmt.Errorf("window has no client area: %dx%d", wc.width, wc.height)
	}
	return nil
}

// GetDimensions returns the client-area dimensions.
func (wc *WindowCapturer) GetDimensions() (int, int) {
	return wc.width, wc.height
}

// CaptureFrame blits the window's client area into an RGBA image. The
// window may resize between frames; dimensions are refreshed first.
func (wc *WindowCapturer) CaptureFrame() (*image.RGBA, error) {
	if err := wc.refreshDimensions(); err != nil {
		return nil, err
	}

	hdcWindow, _, err := procGetDC.Call(wc.hwnd)
	if hdcWindow == 0 {
		return nil, fmt.Errorf("GetDC: %v", err)
	}
	defer procReleaseDC.Call(wc.hwnd, hdcWindow)

	hdcMem, _, err := procCreateCompatibleDC.Call(hdcWindow)
	if hdcMem == 0 {
		return nil, fmt.Errorf("CreateCompatibleDC: %v", err)
	}
	defer procDeleteDC.Call(hdcMem)

	bitmap, _, err := procCreateCompatibleBitmap.Call(hdcWindow, uintptr(wc.width), uintptr(wc.height))
	if bitmap == 0 {
		return nil, fmt.Errorf("CreateCompatibleBitmap: %v", err)
	}
	defer procDeleteObject.Call(bitmap)

	procSelectObject.Call(hdcMem, bitmap)

	ret, _, err := procBitBlt.Call(hdcMem, 0, 0, uintptr(wc.width), uintptr(wc.height), hdcWindow, 0, 0, srcCopy)
	if ret == 0 {
		return nil, fmt.Errorf("BitBlt: %v", err)
	}

	var bi bitmapInfo
	bi.Header.Size = uint32(unsafe.Sizeof(bi.Header))
	bi.Header.Width = int32(wc.width)
	bi.Header.Height = -int32(wc.height) // top-down
	bi.Header.Planes = 1
	bi.Header.BitCount = 32

	img := image.NewRGBA(image.Rect(0, 0, wc.width, wc.height))
	ret, _, err = procGetDIBits.Call(
		hdcMem, bitmap, 0, uintptr(wc.height),
		uintptr(unsafe.Pointer(&img.Pix[0])),
		uintptr(unsafe.Pointer(&bi)), 0,
	)
	if ret == 0 {
		return nil, fmt.Errorf("GetDIBits: %v", err)
	}

	// GDI delivers BGRA; swap into RGBA in place and force opaque alpha.
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+2] = img.Pix[i+2], img.Pix[i]
		img.Pix[i+3] = 255
	}
	return img, nil
}
