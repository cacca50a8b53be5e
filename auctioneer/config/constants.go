package config

import "time"

// Application-wide constants organized by domain

// UI and Display Constants
const (
	InfoColor = 0x0099FF

	// Countdown embed colors keyed to time left on the bid clock
	CountdownAmpleColor    = 0x2ECC71 // 12h or more
	CountdownClosingColor  = 0xF1C40F // between 3h and 12h
	CountdownCriticalColor = 0xE74C3C // under 3h

	CountdownAmpleHours   = 12.0
	CountdownClosingHours = 3.0

	// Pagination
	MembersPerPage = 25

	// Discord caps thread names at 100 characters
	ThreadNameMaxLen = 100
)

// Auction Rule Constants
const (
	// Every bid option shares this range: opening bids, registered bids,
	// and /bid amounts
	MinBidAmount = 1
	MaxBidAmount = 1_000_000

	MaxRegisterHours = 24.0
)

// Scheduler Constants
const (
	// A threshold reminder fires inside (threshold-ReminderWindowHours, threshold]
	ReminderWindowHours = 0.5

	// How many recent thread messages to scan for the status embed
	EmbedScanLimit = 20

	SweepTimeout = 30 * time.Second
)

// Command Handling Constants
const (
	CommandExecutionTimeout = 10 * time.Second
	SlowCommandThreshold    = 2 * time.Second
	DefaultQueryTimeout     = 5 * time.Second
)
