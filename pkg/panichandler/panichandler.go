// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package panichandler

import (
	"fmt"
	"log"
	"runtime/debug"
)

// PanicError is a recovered panic. Value is what was passed to panic().
type PanicError struct {
	Where string
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in %s: %v", e.Where, e.Value)
}

func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// PanicHandler logs a recovered panic (with stack) and returns it as a *PanicError, nil if recoverVal is nil.
// usage: defer func() { rtnErr = panichandler.PanicHandler("name", recover()) }()
func PanicHandler(debugStr string, recoverVal any) error {
	if recoverVal == nil {
		return nil
	}
	stack := debug.Stack()
	log.Printf("[panic] in %s: %v\n%s", debugStr, recoverVal, stack)
	return &PanicError{Where: debugStr, Value: recoverVal, Stack: stack}
}
