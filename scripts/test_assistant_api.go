package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

// Pretty print JSON helper
func prettyPrint(body []byte) {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		fmt.Println(string(body))
		return
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url, token string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func sendUpload(url, token, filePath string) (*http.Response, []byte, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filePath)
	if err != nil {
		return nil, nil, err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, nil, err
	}
	writer.Close()

	req, err := http.NewRequest("POST", baseURL+url, &buf)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func main() {
	header := color.New(color.FgCyan, color.Bold)
	ok := color.New(color.FgGreen)
	fail := color.New(color.FgRed)

	// 1. Create session
	header.Println("\n=== 1. Create session ===")
	resp, body, err := sendRequest("POST", "/session/v1", "", nil)
	if err != nil {
		fail.Printf("request failed: %v\n", err)
		os.Exit(1)
	}
	prettyPrint(body)

	var created struct {
		Data struct {
			Id    string `json:"id"`
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &created); err != nil || created.Data.Token == "" {
		fail.Println("no session token in response")
		os.Exit(1)
	}
	token := created.Data.Token
	ok.Printf("session: %s\n", created.Data.Id)

	// 2. Select topic
	header.Println("\n=== 2. Select Math topic ===")
	resp, body, _ = sendRequest("PUT", "/session/v1/topic", token, map[string]string{"topic_type": "Math"})
	prettyPrint(body)

	// 3. Text hint
	header.Println("\n=== 3. Text hint ===")
	resp, body, _ = sendRequest("POST", "/assistant/v1/hint/text", token, map[string]string{
		"question": "How do I find the roots of x^2 - 5x + 6?",
	})
	prettyPrint(body)
	if resp.StatusCode == http.StatusOK {
		ok.Println("hint produced")
	} else {
		fail.Printf("status %d\n", resp.StatusCode)
	}

	// 4. Refusal veto (served without calling the model)
	header.Println("\n=== 4. Refusal veto ===")
	_, body, _ = sendRequest("POST", "/assistant/v1/hint/text", token, map[string]string{
		"question": "Give me the EXACT ANSWER to x^2 - 5x + 6 = 0",
	})
	prettyPrint(body)

	// 5. PDF upload (optional, pass a path as argv)
	if len(os.Args) > 1 {
		header.Println("\n=== 5. PDF hint ===")
		resp, body, err = sendUpload("/assistant/v1/hint/pdf", token, os.Args[1])
		if err != nil {
			fail.Printf("upload failed: %v\n", err)
		} else {
			prettyPrint(body)
		}
	}

	// 6. History (most recent first)
	header.Println("\n=== 6. Text history ===")
	_, body, _ = sendRequest("GET", "/assistant/v1/history/text", token, nil)
	prettyPrint(body)
}
