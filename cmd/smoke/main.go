// Command smoke drives a running API end to end: login, create a wizard and
// an artifact, assign it, reassign it, and verify the single-owner rule
// survived the round trips.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

type result struct {
	Flag    bool            `json:"flag"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type client struct {
	base  string
	token string
	http  *http.Client
}

func (c *client) call(method, path string, body any) (result, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return result{}, err
		}
	}
	req, err := http.NewRequest(method, c.base+path, bytes.NewReader(payload))
	if err != nil {
		return result{}, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return result{}, err
	}
	defer resp.Body.Close()

	var res result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return result{}, err
	}
	if !res.Flag {
		return res, fmt.Errorf("%s %s: %d %s", method, path, res.Code, res.Message)
	}
	return res, nil
}

func main() {
	base := os.Getenv("HOGWARTS_API_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	username := os.Getenv("HOGWARTS_SMOKE_USER")
	if username == "" {
		username = "albus"
	}
	password := os.Getenv("HOGWARTS_SMOKE_PASSWORD")
	if password == "" {
		password = "Abc12345"
	}

	c := &client{base: base, http: &http.Client{Timeout: 10 * time.Second}}

	// login
	req, err := http.NewRequest(http.MethodPost, base+"/api/v1/users/login", nil)
	if err != nil {
		log.Fatalf("login request: %v", err)
	}
	req.SetBasicAuth(username, password)
	resp, err := c.http.Do(req)
	if err != nil {
		log.Fatalf("login: %v", err)
	}
	var login result
	err = json.NewDecoder(resp.Body).Decode(&login)
	resp.Body.Close()
	if err != nil || !login.Flag {
		log.Fatalf("login failed: %v %s", err, login.Message)
	}
	var loginData struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(login.Data, &loginData); err != nil || loginData.Token == "" {
		log.Fatalf("no token in login response")
	}
	c.token = loginData.Token

	// two wizards
	var wizards [2]int64
	for i, name := range []string{"Smoke Wizard A", "Smoke Wizard B"} {
		res, err := c.call(http.MethodPost, "/api/v1/wizards", map[string]string{"name": name})
		if err != nil {
			log.Fatalf("create wizard: %v", err)
		}
		var w struct {
			ID int64 `json:"id"`
		}
		if err := json.Unmarshal(res.Data, &w); err != nil {
			log.Fatalf("decode wizard: %v", err)
		}
		wizards[i] = w.ID
	}

	// one artifact
	res, err := c.call(http.MethodPost, "/api/v1/artifacts", map[string]string{
		"name":        "Smoke Stone",
		"description": "An artifact created by the smoke test.",
		"imageUrl":    "imageUrl",
	})
	if err != nil {
		log.Fatalf("create artifact: %v", err)
	}
	var a struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(res.Data, &a); err != nil {
		log.Fatalf("decode artifact: %v", err)
	}

	// assign, then reassign
	for _, wid := range wizards {
		if _, err := c.call(http.MethodPut, fmt.Sprintf("/api/v1/wizards/%d/artifacts/%s", wid, a.ID), nil); err != nil {
			log.Fatalf("assign to wizard %d: %v", wid, err)
		}
	}

	// the artifact must now belong to B only
	res, err = c.call(http.MethodGet, fmt.Sprintf("/api/v1/artifacts/%s", a.ID), nil)
	if err != nil {
		log.Fatalf("get artifact: %v", err)
	}
	var owned struct {
		OwnerID *int64 `json:"ownerId"`
	}
	if err := json.Unmarshal(res.Data, &owned); err != nil {
		log.Fatalf("decode artifact: %v", err)
	}
	if owned.OwnerID == nil || *owned.OwnerID != wizards[1] {
		log.Fatalf("single-owner rule violated: owner=%v want=%d", owned.OwnerID, wizards[1])
	}

	res, err = c.call(http.MethodGet, fmt.Sprintf("/api/v1/wizards/%d", wizards[0]), nil)
	if err != nil {
		log.Fatalf("get wizard A: %v", err)
	}
	var prev struct {
		NumberOfArtifacts int `json:"numberOfArtifacts"`
	}
	if err := json.Unmarshal(res.Data, &prev); err != nil {
		log.Fatalf("decode wizard A: %v", err)
	}
	if prev.NumberOfArtifacts != 0 {
		log.Fatalf("previous owner kept %d artifacts", prev.NumberOfArtifacts)
	}

	fmt.Printf("✅ smoke test passed: artifact %s owned by wizard %d\n", a.ID, wizards[1])
}
