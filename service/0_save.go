package service

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/fulldump/apitest"
)

// Save writes a markdown example of the request/response pair into the
// directory named by API_EXAMPLES_PATH. Nothing is written when unset.
func Save(response *apitest.Response, title, description string) {

	examplesPath := os.Getenv("API_EXAMPLES_PATH")
	if examplesPath == "" {
		return
	}

	request := response.Request
	query := ""
	if request.URL.RawQuery != "" {
		query = "?" + request.URL.RawQuery
	}
	requestBody := formatJSON(response.BodyRequestString())

	s := &strings.Builder{}
	fmt.Fprintf(s, "# %s\n\n", title)
	if description != "" {
		fmt.Fprintf(s, "%s\n\n", trimIndent(description))
	}

	s.WriteString("Curl example:\n\n```sh\n")
	fmt.Fprintf(s, "curl -X %s \"https://example.com%s%s\"", request.Method, request.URL.Path, query)
	for _, k := range sortedKeys(request.Header) {
		for _, v := range request.Header[k] {
			fmt.Fprintf(s, " \\\n-H \"%s: %s\"", k, v)
		}
	}
	if requestBody != "" {
		fmt.Fprintf(s, " \\\n-d '%s'", requestBody)
	}
	s.WriteString("\n```\n\n")

	s.WriteString("HTTP request/response example:\n\n```http\n")
	fmt.Fprintf(s, "%s %s%s %s\nHost: example.com\n", request.Method, request.URL.Path, query, request.Proto)
	for _, k := range sortedKeys(request.Header) {
		for _, v := range request.Header[k] {
			fmt.Fprintf(s, "%s: %s\n", k, v)
		}
	}
	fmt.Fprintf(s, "\n%s\n\n", requestBody)

	fmt.Fprintf(s, "%s %s\n", response.Proto, response.Status)
	for _, k := range sortedKeys(response.Header) {
		if k == "Date" {
			continue
		}
		for _, v := range response.Header[k] {
			fmt.Fprintf(s, "%s: %s\n", k, v)
		}
	}
	fmt.Fprintf(s, "\n%s\n```\n", formatJSON(response.BodyString()))

	filename := strings.ReplaceAll(strings.ToLower(title), " ", "_") + ".md"
	p := path.Join(examplesPath, path.Clean(filename))
	err := os.WriteFile(p, []byte(s.String()), 0666)
	if err != nil {
		fmt.Println("Saving err:", err)
	}
}

func sortedKeys(h map[string][]string) []string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func formatJSON(body string) string {
	var i interface{}
	if err := json.Unmarshal([]byte(body), &i); err != nil {
		return body
	}
	b, err := json.MarshalIndent(i, "", "    ")
	if err != nil {
		return body
	}
	return string(b)
}

// trimIndent removes the common leading tabs of a raw string literal.
func trimIndent(d string) string {
	lines := strings.Split(strings.Trim(d, "\n"), "\n")

	minTabs := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		tabs := len(line) - len(strings.TrimLeft(line, "\t"))
		if minTabs < 0 || tabs < minTabs {
			minTabs = tabs
		}
	}

	prefix := strings.Repeat("\t", max(0, minTabs))
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, prefix)
	}
	return strings.Join(lines, "\n")
}
