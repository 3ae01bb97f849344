// bios_helpers.go - shared CF/AH success/failure helpers for the BIOS
// service handlers.
//
// Every vector handler ends by calling one of these instead of setting CF
// and AH inline; keeps the AMD/Intel "CF=error indicator, AH=error code"
// convention expressed in exactly one place.
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package main

// BIOS error codes used across multiple vectors (INT 13h, INT 15h, …).
const (
	biosErrInvalidCommand     = 0x01 // bad parameter / invalid command
	biosErrFunctionNotSupported = 0x86
)

// biosOK clears CF; it does not touch AH, since not every successful
// subfunction zeroes AH (e.g. INT 10h AH=0Fh returns the mode in AL/AH).
func biosOK(e *Engine) {
	e.SetCF(false)
}

// biosOKZeroAH clears CF and zeroes AH, the common "plain success" shape.
func biosOKZeroAH(e *Engine) {
	e.SetCF(false)
	e.SetAH(0)
}

// biosFail sets CF and an error code in AH - the universal BIOS failure
// signal.
func biosFail(e *Engine, code byte) {
	e.SetCF(true)
	e.SetAH(code)
}

// biosUnsupported answers an unrecognised AH subfunction uniformly: CF=1,
// AH=0x86 ("function not supported"), the same failure signal every
// vector falls back to for a subfunction it doesn't implement.
func biosUnsupported(e *Engine) {
	biosFail(e, biosErrFunctionNotSupported)
}

// subFuncTable maps an AH (or AH/AL pair, for vectors that sub-dispatch
// further) value to a handler closure. Using a table instead of a
// switch keeps each vector's file a flat list of "function -> effect"
// entries.
type subFuncTable map[byte]func(ctx *bioContext)

// dispatch looks up fn in the table by AH and invokes it, falling back to
// biosUnsupported when AH names no entry.
func (t subFuncTable) dispatch(ctx *bioContext) {
	if fn, ok := t[ctx.engine.AH()]; ok {
		fn(ctx)
		return
	}
	biosUnsupported(ctx.engine)
}
