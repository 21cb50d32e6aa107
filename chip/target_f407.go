// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

//go:build !stm32f401 && !stm32f429

package chip

// Target is the family the program is built for. STM32F405/F407 unless a
// family build tag selects another one.
var Target = STM32F407
