// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

//go:build stm32f401

package rcc

// STM32F401
const (
	GPIOA Peripheral = iota
	GPIOB
	GPIOC
	GPIOD
	GPIOE
	GPIOH
	CRC
	DMA1
	DMA2
	OTGFS
	TIM2
	TIM3
	TIM4
	TIM5
	WWDG
	SPI2
	SPI3
	USART2
	I2C1
	I2C2
	I2C3
	PWR
	TIM1
	USART1
	USART6
	ADC1
	SDIO
	SPI1
	SPI4
	SYSCFG
	TIM9
	TIM10
	TIM11
)

var peripheralTable = [...]busBit{
	GPIOA:  {"GPIOA", AHB1, 0},
	GPIOB:  {"GPIOB", AHB1, 1},
	GPIOC:  {"GPIOC", AHB1, 2},
	GPIOD:  {"GPIOD", AHB1, 3},
	GPIOE:  {"GPIOE", AHB1, 4},
	GPIOH:  {"GPIOH", AHB1, 7},
	CRC:    {"CRC", AHB1, 12},
	DMA1:   {"DMA1", AHB1, 21},
	DMA2:   {"DMA2", AHB1, 22},
	OTGFS:  {"OTGFS", AHB2, 7},
	TIM2:   {"TIM2", APB1, 0},
	TIM3:   {"TIM3", APB1, 1},
	TIM4:   {"TIM4", APB1, 2},
	TIM5:   {"TIM5", APB1, 3},
	WWDG:   {"WWDG", APB1, 11},
	SPI2:   {"SPI2", APB1, 14},
	SPI3:   {"SPI3", APB1, 15},
	USART2: {"USART2", APB1, 17},
	I2C1:   {"I2C1", APB1, 21},
	I2C2:   {"I2C2", APB1, 22},
	I2C3:   {"I2C3", APB1, 23},
	PWR:    {"PWR", APB1, 28},
	TIM1:   {"TIM1", APB2, 0},
	USART1: {"USART1", APB2, 4},
	USART6: {"USART6", APB2, 5},
	ADC1:   {"ADC1", APB2, 8},
	SDIO:   {"SDIO", APB2, 11},
	SPI1:   {"SPI1", APB2, 12},
	SPI4:   {"SPI4", APB2, 13},
	SYSCFG: {"SYSCFG", APB2, 14},
	TIM9:   {"TIM9", APB2, 16},
	TIM10:  {"TIM10", APB2, 17},
	TIM11:  {"TIM11", APB2, 18},
}

var gpioPorts = [...]Peripheral{GPIOA, GPIOB, GPIOC, GPIOD, GPIOE, noPort, noPort, GPIOH}
