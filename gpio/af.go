// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package gpio

// AF selects one of the sixteen alternate function slots of a pin.
type AF interface {
	Number() uint8
}

type (
	AF0  struct{}
	AF1  struct{}
	AF2  struct{}
	AF3  struct{}
	AF4  struct{}
	AF5  struct{}
	AF6  struct{}
	AF7  struct{}
	AF8  struct{}
	AF9  struct{}
	AF10 struct{}
	AF11 struct{}
	AF12 struct{}
	AF13 struct{}
	AF14 struct{}
	AF15 struct{}
)

func (AF0) Number() uint8  { return 0 }
func (AF1) Number() uint8  { return 1 }
func (AF2) Number() uint8  { return 2 }
func (AF3) Number() uint8  { return 3 }
func (AF4) Number() uint8  { return 4 }
func (AF5) Number() uint8  { return 5 }
func (AF6) Number() uint8  { return 6 }
func (AF7) Number() uint8  { return 7 }
func (AF8) Number() uint8  { return 8 }
func (AF9) Number() uint8  { return 9 }
func (AF10) Number() uint8 { return 10 }
func (AF11) Number() uint8 { return 11 }
func (AF12) Number() uint8 { return 12 }
func (AF13) Number() uint8 { return 13 }
func (AF14) Number() uint8 { return 14 }
func (AF15) Number() uint8 { return 15 }

// The afN methods are generated for every (pin, function) pair the
// datasheet lists.
type (
	af0Pin interface {
		PinID
		af0()
	}
	af1Pin interface {
		PinID
		af1()
	}
	af2Pin interface {
		PinID
		af2()
	}
	af3Pin interface {
		PinID
		af3()
	}
	af4Pin interface {
		PinID
		af4()
	}
	af5Pin interface {
		PinID
		af5()
	}
	af6Pin interface {
		PinID
		af6()
	}
	af7Pin interface {
		PinID
		af7()
	}
	af8Pin interface {
		PinID
		af8()
	}
	af9Pin interface {
		PinID
		af9()
	}
	af10Pin interface {
		PinID
		af10()
	}
	af11Pin interface {
		PinID
		af11()
	}
	af12Pin interface {
		PinID
		af12()
	}
	af13Pin interface {
		PinID
		af13()
	}
	af14Pin interface {
		PinID
		af14()
	}
	af15Pin interface {
		PinID
		af15()
	}
)

// IntoAF0 selects alternate function 0 (system: MCO, SWD, trace). The
// call compiles only for pins that have a function in that slot.
func IntoAF0[I af0Pin](p Pin[I]) Alternate[I, AF0] {
	return intoAlternate[I, AF0](p.handle())
}

// IntoAF1 selects alternate function 1.
func IntoAF1[I af1Pin](p Pin[I]) Alternate[I, AF1] {
	return intoAlternate[I, AF1](p.handle())
}

// IntoAF2 selects alternate function 2.
func IntoAF2[I af2Pin](p Pin[I]) Alternate[I, AF2] {
	return intoAlternate[I, AF2](p.handle())
}

// IntoAF3 selects alternate function 3.
func IntoAF3[I af3Pin](p Pin[I]) Alternate[I, AF3] {
	return intoAlternate[I, AF3](p.handle())
}

// IntoAF4 selects alternate function 4.
func IntoAF4[I af4Pin](p Pin[I]) Alternate[I, AF4] {
	return intoAlternate[I, AF4](p.handle())
}

// IntoAF5 selects alternate function 5.
func IntoAF5[I af5Pin](p Pin[I]) Alternate[I, AF5] {
	return intoAlternate[I, AF5](p.handle())
}

// IntoAF6 selects alternate function 6.
func IntoAF6[I af6Pin](p Pin[I]) Alternate[I, AF6] {
	return intoAlternate[I, AF6](p.handle())
}

// IntoAF7 selects alternate function 7.
func IntoAF7[I af7Pin](p Pin[I]) Alternate[I, AF7] {
	return intoAlternate[I, AF7](p.handle())
}

// IntoAF8 selects alternate function 8.
func IntoAF8[I af8Pin](p Pin[I]) Alternate[I, AF8] {
	return intoAlternate[I, AF8](p.handle())
}

// IntoAF9 selects alternate function 9.
func IntoAF9[I af9Pin](p Pin[I]) Alternate[I, AF9] {
	return intoAlternate[I, AF9](p.handle())
}

// IntoAF10 selects alternate function 10.
func IntoAF10[I af10Pin](p Pin[I]) Alternate[I, AF10] {
	return intoAlternate[I, AF10](p.handle())
}

// IntoAF11 selects alternate function 11.
func IntoAF11[I af11Pin](p Pin[I]) Alternate[I, AF11] {
	return intoAlternate[I, AF11](p.handle())
}

// IntoAF12 selects alternate function 12.
func IntoAF12[I af12Pin](p Pin[I]) Alternate[I, AF12] {
	return intoAlternate[I, AF12](p.handle())
}

// IntoAF13 selects alternate function 13.
func IntoAF13[I af13Pin](p Pin[I]) Alternate[I, AF13] {
	return intoAlternate[I, AF13](p.handle())
}

// IntoAF14 selects alternate function 14.
func IntoAF14[I af14Pin](p Pin[I]) Alternate[I, AF14] {
	return intoAlternate[I, AF14](p.handle())
}

// IntoAF15 selects alternate function 15.
func IntoAF15[I af15Pin](p Pin[I]) Alternate[I, AF15] {
	return intoAlternate[I, AF15](p.handle())
}
