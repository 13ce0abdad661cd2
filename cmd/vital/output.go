// ABOUTME: JSON output envelope shared by every command.
// ABOUTME: Success prints to stdout; errors render the same shape to stderr.
package main

import (
	"encoding/json"
	"fmt"
)

type envelope struct {
	Status  string         `json:"status"`
	Command string         `json:"command"`
	Data    any            `json:"data"`
	Error   *envelopeError `json:"error"`
}

type envelopeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// printJSON emits the success envelope for a command.
func printJSON(command string, data any) error {
	out, err := json.Marshal(envelope{Status: "ok", Command: command, Data: data})
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func errorEnvelope(command, code, message string) string {
	out, _ := json.Marshal(envelope{
		Status:  "error",
		Command: command,
		Error:   &envelopeError{Code: code, Message: message},
	})
	return string(out)
}
