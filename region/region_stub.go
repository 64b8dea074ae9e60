//go:build !windows

package region

import "image"

func newWindow(image.Rectangle) (Window, error) {
	return nil, ErrUnsupported
}
