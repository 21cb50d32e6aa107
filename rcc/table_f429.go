// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

//go:build stm32f429

package rcc

// STM32F427/F429
const (
	GPIOA Peripheral = iota
	GPIOB
	GPIOC
	GPIOD
	GPIOE
	GPIOF
	GPIOG
	GPIOH
	GPIOI
	GPIOJ
	GPIOK
	CRC
	BKPSRAM
	CCMDATARAM
	DMA1
	DMA2
	DMA2D
	ETHMAC
	OTGHS
	DCMI
	CRYP
	HASH
	RNG
	OTGFS
	FMC
	TIM2
	TIM3
	TIM4
	TIM5
	TIM6
	TIM7
	TIM12
	TIM13
	TIM14
	WWDG
	SPI2
	SPI3
	USART2
	USART3
	UART4
	UART5
	I2C1
	I2C2
	I2C3
	CAN1
	CAN2
	PWR
	DAC
	UART7
	UART8
	TIM1
	TIM8
	USART1
	USART6
	ADC1
	ADC2
	ADC3
	SDIO
	SPI1
	SPI4
	SYSCFG
	TIM9
	TIM10
	TIM11
	SPI5
	SPI6
	SAI1
	LTDC
)

var peripheralTable = [...]busBit{
	GPIOA:      {"GPIOA", AHB1, 0},
	GPIOB:      {"GPIOB", AHB1, 1},
	GPIOC:      {"GPIOC", AHB1, 2},
	GPIOD:      {"GPIOD", AHB1, 3},
	GPIOE:      {"GPIOE", AHB1, 4},
	GPIOF:      {"GPIOF", AHB1, 5},
	GPIOG:      {"GPIOG", AHB1, 6},
	GPIOH:      {"GPIOH", AHB1, 7},
	GPIOI:      {"GPIOI", AHB1, 8},
	GPIOJ:      {"GPIOJ", AHB1, 9},
	GPIOK:      {"GPIOK", AHB1, 10},
	CRC:        {"CRC", AHB1, 12},
	BKPSRAM:    {"BKPSRAM", AHB1, 18},
	CCMDATARAM: {"CCMDATARAM", AHB1, 20},
	DMA1:       {"DMA1", AHB1, 21},
	DMA2:       {"DMA2", AHB1, 22},
	DMA2D:      {"DMA2D", AHB1, 23},
	ETHMAC:     {"ETHMAC", AHB1, 25},
	OTGHS:      {"OTGHS", AHB1, 29},
	DCMI:       {"DCMI", AHB2, 0},
	CRYP:       {"CRYP", AHB2, 4},
	HASH:       {"HASH", AHB2, 5},
	RNG:        {"RNG", AHB2, 6},
	OTGFS:      {"OTGFS", AHB2, 7},
	FMC:        {"FMC", AHB3, 0},
	TIM2:       {"TIM2", APB1, 0},
	TIM3:       {"TIM3", APB1, 1},
	TIM4:       {"TIM4", APB1, 2},
	TIM5:       {"TIM5", APB1, 3},
	TIM6:       {"TIM6", APB1, 4},
	TIM7:       {"TIM7", APB1, 5},
	TIM12:      {"TIM12", APB1, 6},
	TIM13:      {"TIM13", APB1, 7},
	TIM14:      {"TIM14", APB1, 8},
	WWDG:       {"WWDG", APB1, 11},
	SPI2:       {"SPI2", APB1, 14},
	SPI3:       {"SPI3", APB1, 15},
	USART2:     {"USART2", APB1, 17},
	USART3:     {"USART3", APB1, 18},
	UART4:      {"UART4", APB1, 19},
	UART5:      {"UART5", APB1, 20},
	I2C1:       {"I2C1", APB1, 21},
	I2C2:       {"I2C2", APB1, 22},
	I2C3:       {"I2C3", APB1, 23},
	CAN1:       {"CAN1", APB1, 25},
	CAN2:       {"CAN2", APB1, 26},
	PWR:        {"PWR", APB1, 28},
	DAC:        {"DAC", APB1, 29},
	UART7:      {"UART7", APB1, 30},
	UART8:      {"UART8", APB1, 31},
	TIM1:       {"TIM1", APB2, 0},
	TIM8:       {"TIM8", APB2, 1},
	USART1:     {"USART1", APB2, 4},
	USART6:     {"USART6", APB2, 5},
	ADC1:       {"ADC1", APB2, 8},
	ADC2:       {"ADC2", APB2, 9},
	ADC3:       {"ADC3", APB2, 10},
	SDIO:       {"SDIO", APB2, 11},
	SPI1:       {"SPI1", APB2, 12},
	SPI4:       {"SPI4", APB2, 13},
	SYSCFG:     {"SYSCFG", APB2, 14},
	TIM9:       {"TIM9", APB2, 16},
	TIM10:      {"TIM10", APB2, 17},
	TIM11:      {"TIM11", APB2, 18},
	SPI5:       {"SPI5", APB2, 20},
	SPI6:       {"SPI6", APB2, 21},
	SAI1:       {"SAI1", APB2, 22},
	LTDC:       {"LTDC", APB2, 26},
}

var gpioPorts = [...]Peripheral{GPIOA, GPIOB, GPIOC, GPIOD, GPIOE, GPIOF, GPIOG, GPIOH, GPIOI, GPIOJ, GPIOK}
