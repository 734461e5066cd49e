package constants

import "time"

// *********************************************************************************************************************
// THESE ARE KEY TO A RESPONSIVE UI WHILE PAGES LOAD (EXACT VALUES DETERMINED BY FEEL)

// EventBufferSize is the number of engine events buffered between the event bus and the bubbletea program. Events
// beyond it are dropped; the status bar reads the latest snapshot anyway
const EventBufferSize = 256

// StatusRefreshInterval controls the cadence at which the status bar refreshes the time since the last render
var StatusRefreshInterval = time.Second

// *********************************************************************************************************************

// ToastDuration controls how long toasts stay visible
var ToastDuration = 5 * time.Second

// ShutdownTimeout bounds how long quitting waits for the workflow to stop
var ShutdownTimeout = 2 * time.Second

// DefaultLatency is the simulated latency of the demo datasources
var DefaultLatency = 150 * time.Millisecond

// AppendBatchSize is the number of items appended or prepended per key press
const AppendBatchSize = 3
