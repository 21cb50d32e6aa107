// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

//go:build stm32f401

package chip

// Target is the family the program is built for.
var Target = STM32F401
