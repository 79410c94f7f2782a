package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case User:
		o.printUser(v)
	case LoginResult:
		o.printLoginResult(v)
	case TokenResult:
		fmt.Printf("Token: %s\n", v.Token)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printUser(u User) {
	fmt.Printf("ID:       %s\n", u.ID)
	fmt.Printf("Username: %s\n", u.Username)
	fmt.Printf("Role:     %s\n", u.Role)
	fmt.Printf("Height:   %g\n", u.Height)
	fmt.Printf("Weight:   %g\n", u.Weight)
}

func (o *Output) printLoginResult(r LoginResult) {
	o.printUser(r.User)
	fmt.Printf("Token:    %s\n", r.Token)
}

// User response type (matches API)
type User struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Role     string  `json:"role"`
	Height   float64 `json:"height"`
	Weight   float64 `json:"weight"`
}

// LoginResult combines user and token
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// TokenResult carries a refreshed token
type TokenResult struct {
	Token string `json:"token"`
}
