// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package stlink

import "github.com/google/gousb"

// AllVIDs and AllPIDs match every known ST-Link vendor or product id.
const (
	AllVIDs gousb.ID = 0xFFFF
	AllPIDs gousb.ID = 0xFFFF
)

const (
	pidV1          gousb.ID = 0x3744
	pidV2          gousb.ID = 0x3748
	pidV21         gousb.ID = 0x374B
	pidV21NoMsd    gousb.ID = 0x3752
	pidV3UsbLoader gousb.ID = 0x374D
	pidV3E         gousb.ID = 0x374E
	pidV3S         gousb.ID = 0x374F
	pidV32Vcp      gousb.ID = 0x3753
)

var (
	supportedVIDs = []gousb.ID{0x0483}
	supportedPIDs = []gousb.ID{pidV1, pidV2, pidV21, pidV21NoMsd, pidV3UsbLoader, pidV3E, pidV3S, pidV32Vcp}
)

const (
	usbEndpointIn  = 0x80
	usbEndpointOut = 0x00

	rxEndpoint      = 1
	txEndpoint      = 2
	txEndpointV21   = 1
	cswSignature    = 0x53425355
	cswSize         = 13
	cbwHeaderSize   = 15
	cmdBufferSize   = 31
	cmdSizeV2       = 16
	dataBufferSize  = 4096
	senseDataLength = 18
)

// feature flags, indices into version.flags
const (
	flagHasTrace = iota
	flagHasSwdSetFreq
	flagHasJtagSetFreq
	flagHasMem16Bit
	flagHasGetLastRwStatus2
	flagHasDapReg
	flagQuirkJtagDpRead
	flagHasApInit
	flagHasDpBankSel
	flagHasRw8Bytes512
	flagFixCloseAp

	flagCount
)

const flagHasTargetVolt = flagHasTrace

type apiVersion uint8

const (
	jtagAPIV1 apiVersion = 1
	jtagAPIV2 apiVersion = 2
	jtagAPIV3 apiVersion = 3
)

const (
	deviceModeDFU        = 0x00
	deviceModeMass       = 0x01
	deviceModeDebug      = 0x02
	deviceModeSwim       = 0x03
	deviceModeBootloader = 0x04
)

// probe status bytes
const (
	statusOK                 = 0x80
	statusFault              = 0x81
	statusJtagGetIDCodeError = 0x09
	statusJtagWriteError     = 0x0c
	statusJtagWriteVerifyErr = 0x0d
	statusSwdAPWait          = 0x10
	statusSwdAPFault         = 0x11
	statusSwdAPError         = 0x12
	statusSwdAPParityError   = 0x13
	statusSwdDPWait          = 0x14
	statusSwdDPFault         = 0x15
	statusSwdDPError         = 0x16
	statusSwdDPParityError   = 0x17
	statusSwdAPWDataError    = 0x18
	statusSwdAPStickyError   = 0x19
	statusSwdAPStickyOrun    = 0x1a
	statusBadAPError         = 0x1d
)

const (
	cmdRequestSense     = 0x03
	cmdGetVersion       = 0xF1
	cmdDebug            = 0xF2
	cmdDfu              = 0xF3
	cmdSwim             = 0xF4
	cmdGetCurrentMode   = 0xF5
	cmdGetTargetVoltage = 0xF7
	cmdGetVersionEx     = 0xFB

	dfuExit  = 0x07
	swimExit = 0x01
)

// debug sub commands
const (
	debugReadMem32Bit      = 0x07
	debugWriteMem32Bit     = 0x08
	debugReadMem8Bit       = 0x0c
	debugWriteMem8Bit      = 0x0d
	debugApiV1Enter        = 0x20
	debugExit              = 0x21
	debugApiV2Enter        = 0x30
	debugApiV2ReadIDCodes  = 0x31
	debugApiV2LastRWStatus = 0x3B
	debugApiV2DriveNrst    = 0x3C
	debugApiV2LastRWStat2  = 0x3E
	debugApiV2SwdSetFreq   = 0x43
	debugApiV2InitAP       = 0x4B
	debugApiV3SetComFreq   = 0x61
	debugApiV3GetComFreq   = 0x62
	debugEnterSwdNoReset   = 0xa3
)

const (
	nrstLow  = 0x00
	nrstHigh = 0x01
)

const (
	maxWaitRetries = 8
	maxAPSel       = 255

	cpuIDRegister = 0xE000ED00

	maxReadWrite8   = 64
	v3MaxReadWrite8 = 512
	v3MaxFreqCount  = 10
)
