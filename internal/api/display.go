package api

import (
	"github.com/gocef/cef/internal/descriptor"
	"github.com/gocef/cef/internal/ffi"
	"github.com/gocef/cef/types"
)

// Display is a physical screen.
type Display struct{ ref }

// PrimaryDisplay is the screen holding the origin.
func (b *Binding) PrimaryDisplay() (*Display, error) {
	const op = "cef_display_get_primary"
	if err := b.create(op, types.UIThread); err != nil {
		return nil, err
	}
	h, err := b.wrap(descriptor.Display, b.lib.Call(b.sym.DisplayGetPrimary), op)
	if err != nil {
		return nil, err
	}
	return &Display{ref{b: b, h: h}}, nil
}

// DisplayNearestPoint is the screen closest to p. pixels tells whether p is
// in pixel rather than device independent coordinates.
func (b *Binding) DisplayNearestPoint(p types.Point, pixels bool) (*Display, error) {
	const op = "cef_display_get_nearest_point"
	if err := b.create(op, types.UIThread); err != nil {
		return nil, err
	}
	var a ffi.Arena
	defer a.Free()
	h, err := b.wrap(descriptor.Display, b.lib.Call(b.sym.DisplayNearestPoint, ffi.EncodePoint(&a, p), boolWord(pixels)), op)
	if err != nil {
		return nil, err
	}
	return &Display{ref{b: b, h: h}}, nil
}

func (b *Binding) DisplayCount() (int, error) {
	const op = "cef_display_get_count"
	if err := b.create(op, types.UIThread); err != nil {
		return 0, err
	}
	return int(b.lib.Call(b.sym.DisplayGetCount)), nil
}

func (d *Display) Clone() *Display {
	return &Display{d.clone()}
}

func (d *Display) ID() (int64, error) {
	v, err := d.invoke("get_id")
	return int64(v), err
}

func (d *Display) Bounds() (types.Rect, error) {
	return d.rect("get_bounds")
}

// WorkArea is Bounds minus task bars and docks.
func (d *Display) WorkArea() (types.Rect, error) {
	return d.rect("get_work_area")
}

// Rotation is clockwise in degrees: 0, 90, 180 or 270.
func (d *Display) Rotation() (int, error) {
	return d.number("get_rotation")
}
