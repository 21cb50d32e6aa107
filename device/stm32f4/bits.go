// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package stm32f4

// RCC
const (
	RCC_CR_HSION      = 0x1 << 0
	RCC_CR_HSIRDY     = 0x1 << 1
	RCC_CR_HSEON      = 0x1 << 16
	RCC_CR_HSERDY     = 0x1 << 17
	RCC_CR_HSEBYP     = 0x1 << 18
	RCC_CR_CSSON      = 0x1 << 19
	RCC_CR_PLLON      = 0x1 << 24
	RCC_CR_PLLRDY     = 0x1 << 25
	RCC_CR_PLLI2SON   = 0x1 << 26
	RCC_CR_PLLI2SRDY  = 0x1 << 27
	RCC_CR_PLLSAION   = 0x1 << 28
	RCC_CR_PLLSAIRDY  = 0x1 << 29
	RCC_CR_HSEON_Pos  = 16
	RCC_CR_PLLON_Pos  = 24
	RCC_CR_HSION_Pos  = 0
	RCC_CR_HSEBYP_Pos = 18

	RCC_PLLCFGR_PLLM_Pos   = 0
	RCC_PLLCFGR_PLLM_Msk   = 0x3f
	RCC_PLLCFGR_PLLN_Pos   = 6
	RCC_PLLCFGR_PLLN_Msk   = 0x1ff
	RCC_PLLCFGR_PLLP_Pos   = 16
	RCC_PLLCFGR_PLLP_Msk   = 0x3
	RCC_PLLCFGR_PLLSRC_Pos = 22
	RCC_PLLCFGR_PLLSRC     = 0x1 << 22
	RCC_PLLCFGR_PLLQ_Pos   = 24
	RCC_PLLCFGR_PLLQ_Msk   = 0xf

	RCC_CFGR_SW_Pos    = 0
	RCC_CFGR_SW_Msk    = 0x3
	RCC_CFGR_SW_HSI    = 0x0
	RCC_CFGR_SW_HSE    = 0x1
	RCC_CFGR_SW_PLL    = 0x2
	RCC_CFGR_SWS_Pos   = 2
	RCC_CFGR_SWS_Msk   = 0x3
	RCC_CFGR_HPRE_Pos  = 4
	RCC_CFGR_HPRE_Msk  = 0xf
	RCC_CFGR_PPRE1_Pos = 10
	RCC_CFGR_PPRE1_Msk = 0x7
	RCC_CFGR_PPRE2_Pos = 13
	RCC_CFGR_PPRE2_Msk = 0x7
	RCC_CFGR_I2SSRC    = 0x1 << 23

	RCC_PLLI2SCFGR_PLLI2SM_Pos = 0
	RCC_PLLI2SCFGR_PLLI2SM_Msk = 0x3f
	RCC_PLLI2SCFGR_PLLI2SN_Pos = 6
	RCC_PLLI2SCFGR_PLLI2SN_Msk = 0x1ff
	RCC_PLLI2SCFGR_PLLI2SQ_Pos = 24
	RCC_PLLI2SCFGR_PLLI2SQ_Msk = 0xf
	RCC_PLLI2SCFGR_PLLI2SR_Pos = 28
	RCC_PLLI2SCFGR_PLLI2SR_Msk = 0x7

	RCC_PLLSAICFGR_PLLSAIN_Pos = 6
	RCC_PLLSAICFGR_PLLSAIN_Msk = 0x1ff
	RCC_PLLSAICFGR_PLLSAIQ_Pos = 24
	RCC_PLLSAICFGR_PLLSAIQ_Msk = 0xf
	RCC_PLLSAICFGR_PLLSAIR_Pos = 28
	RCC_PLLSAICFGR_PLLSAIR_Msk = 0x7

	RCC_DCKCFGR_PLLSAIDIVQ_Pos = 8
	RCC_DCKCFGR_PLLSAIDIVQ_Msk = 0x1f
	RCC_DCKCFGR_TIMPRE         = 0x1 << 24

	RCC_APB1ENR_PWREN_Pos    = 28
	RCC_APB2ENR_SYSCFGEN_Pos = 14
)

// Reset values.
const (
	RCC_CR_Reset      = 0x00000083
	RCC_PLLCFGR_Reset = 0x24003010
)

// FLASH
const (
	FLASH_ACR_LATENCY_Pos = 0
	FLASH_ACR_LATENCY_Msk = 0xf
	FLASH_ACR_PRFTEN      = 0x1 << 8
	FLASH_ACR_ICEN        = 0x1 << 9
	FLASH_ACR_DCEN        = 0x1 << 10
)

// PWR
const (
	PWR_CR_VOS_Pos  = 14
	PWR_CR_VOS_Msk  = 0x3
	PWR_CR_ODEN     = 0x1 << 16
	PWR_CR_ODSWEN   = 0x1 << 17
	PWR_CSR_VOSRDY  = 0x1 << 14
	PWR_CSR_ODRDY   = 0x1 << 16
	PWR_CSR_ODSWRDY = 0x1 << 17
)

// GPIO
const (
	GPIO_MODER_Input     = 0x0
	GPIO_MODER_Output    = 0x1
	GPIO_MODER_Alternate = 0x2
	GPIO_MODER_Analog    = 0x3
	GPIO_MODER_Msk       = 0x3

	GPIO_PUPDR_None     = 0x0
	GPIO_PUPDR_PullUp   = 0x1
	GPIO_PUPDR_PullDown = 0x2
	GPIO_PUPDR_Msk      = 0x3

	GPIO_OSPEEDR_Low      = 0x0
	GPIO_OSPEEDR_Medium   = 0x1
	GPIO_OSPEEDR_High     = 0x2
	GPIO_OSPEEDR_VeryHigh = 0x3
	GPIO_OSPEEDR_Msk      = 0x3

	GPIO_AFR_Msk = 0xf

	GPIOA_MODER_Reset   = 0xA8000000
	GPIOB_MODER_Reset   = 0x00000280
	GPIOA_PUPDR_Reset   = 0x64000000
	GPIOB_PUPDR_Reset   = 0x00000100
	GPIOA_OSPEEDR_Reset = 0x0C000000
	GPIOB_OSPEEDR_Reset = 0x000000C0
)

// SYSCFG, EXTI
const (
	SYSCFG_EXTICR_Msk = 0xf
)

// DBGMCU
const (
	DBGMCU_IDCODE_DEV_ID_Msk = 0xfff
	DBGMCU_IDCODE_REV_ID_Pos = 16
)

// SysTick
const (
	SysTick_CTRL_ENABLE     = 0x1 << 0
	SysTick_CTRL_TICKINT    = 0x1 << 1
	SysTick_CTRL_CLKSOURCE  = 0x1 << 2
	SysTick_CTRL_COUNTFLAG  = 0x1 << 16
	SysTick_LOAD_RELOAD_Msk = 0x00ffffff
)
