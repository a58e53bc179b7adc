// Command lockerctl is a small terminal client for the Secure Locker API.
//
// Usage:
//
//	lockerctl [-s server] [-t token] <command> [args]
//
// Commands:
//
//	register <username>             create an account (password prompted)
//	login <username>                obtain a bearer token (password prompted)
//	add <title> <content>           store a secret
//	list                            list stored secrets
//	update <id> <title> <content>   replace a secret's title and content
//	delete <id>                     remove a secret
//
// The bearer token can also be supplied via the LOCKER_TOKEN environment
// variable.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

type client struct {
	base  string
	token string
	http  *http.Client
}

func main() {
	server := flag.String("s", "http://localhost:8080", "server base URL")
	token := flag.String("t", os.Getenv("LOCKER_TOKEN"), "bearer token")
	flag.Parse()

	c := &client{base: strings.TrimRight(*server, "/"), token: *token, http: http.DefaultClient}

	if err := run(c, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(c *client, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no command given (try: register, login, add, list, update, delete)")
	}

	cmd, args := args[0], args[1:]

	switch cmd {
	case "register":
		if len(args) != 1 {
			return fmt.Errorf("usage: register <username>")
		}
		return c.register(args[0])
	case "login":
		if len(args) != 1 {
			return fmt.Errorf("usage: login <username>")
		}
		return c.login(args[0])
	case "add":
		if len(args) != 2 {
			return fmt.Errorf("usage: add <title> <content>")
		}
		return c.addSecret(args[0], args[1])
	case "list":
		return c.listSecrets()
	case "update":
		if len(args) != 3 {
			return fmt.Errorf("usage: update <id> <title> <content>")
		}
		return c.updateSecret(args[0], args[1], args[2])
	case "delete":
		if len(args) != 1 {
			return fmt.Errorf("usage: delete <id>")
		}
		return c.deleteSecret(args[0])
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// getPassword prompts for a password and reads it without echo.
func getPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Enter password: ")
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

func (c *client) do(method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequest(method, c.base+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Detail string `json:"detail"`
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Detail != "" {
			return fmt.Errorf("%s (%s)", apiErr.Detail, resp.Status)
		}
		return fmt.Errorf("server returned %s", resp.Status)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *client) doJSON(method, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.do(method, path, bytes.NewReader(body), "application/json", out)
}

func (c *client) register(username string) error {
	password, err := getPassword()
	if err != nil {
		return err
	}

	var user struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	}
	payload := map[string]string{"username": username, "password": password}
	if err := c.doJSON(http.MethodPost, "/register", payload, &user); err != nil {
		return err
	}

	fmt.Printf("registered %s (id %s)\n", user.Username, user.ID)
	return nil
}

func (c *client) login(username string) error {
	password, err := getPassword()
	if err != nil {
		return err
	}

	form := url.Values{"username": {username}, "password": {password}}
	var tok struct {
		AccessToken string `json:"access_token"`
	}
	err = c.do(http.MethodPost, "/login",
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", &tok)
	if err != nil {
		return err
	}

	// Printed to stdout so it can be captured: export LOCKER_TOKEN=$(lockerctl login ...)
	fmt.Println(tok.AccessToken)
	return nil
}

type secretItem struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (c *client) addSecret(title, content string) error {
	var secret secretItem
	payload := map[string]string{"title": title, "content": content}
	if err := c.doJSON(http.MethodPost, "/secrets", payload, &secret); err != nil {
		return err
	}
	fmt.Printf("created %s (id %s)\n", secret.Title, secret.ID)
	return nil
}

func (c *client) listSecrets() error {
	var list []secretItem
	if err := c.do(http.MethodGet, "/secrets", nil, "", &list); err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("no secrets stored")
		return nil
	}
	for _, s := range list {
		fmt.Printf("%s  %s: %s\n", s.ID, s.Title, s.Content)
	}
	return nil
}

func (c *client) updateSecret(id, title, content string) error {
	payload := map[string]string{"title": title, "content": content}
	if err := c.doJSON(http.MethodPut, "/secrets/"+id, payload, nil); err != nil {
		return err
	}
	fmt.Println("updated")
	return nil
}

func (c *client) deleteSecret(id string) error {
	if err := c.do(http.MethodDelete, "/secrets/"+id, nil, "", nil); err != nil {
		return err
	}
	fmt.Println("deleted")
	return nil
}
