package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/jwebster45206/initiative-tracker/pkg/bestiary"
	"github.com/jwebster45206/initiative-tracker/pkg/encounter"
	"github.com/jwebster45206/initiative-tracker/pkg/party"
)

func testConnection(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

func listEncounters(client *http.Client, baseURL string) ([]encounter.Snapshot, error) {
	resp, err := client.Get(baseURL + "/v1/encounters")
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("failed to list encounters: %s", errorResp.Error)
	}

	var snaps []encounter.Snapshot
	if err := json.Unmarshal(body, &snaps); err != nil {
		return nil, fmt.Errorf("failed to parse encounter list: %w", err)
	}
	return snaps, nil
}

func saveEncounter(client *http.Client, baseURL string, snap encounter.Snapshot) (*encounter.Snapshot, error) {
	jsonData, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	resp, err := client.Post(
		baseURL+"/v1/encounters",
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusCreated {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("failed to save encounter: %s", errorResp.Error)
	}

	var saved encounter.Snapshot
	if err := json.Unmarshal(body, &saved); err != nil {
		return nil, fmt.Errorf("failed to parse save response: %w", err)
	}
	return &saved, nil
}

func getEncounter(client *http.Client, baseURL, slug string) (*encounter.Snapshot, error) {
	resp, err := client.Get(fmt.Sprintf("%s/v1/encounters/%s", baseURL, slug))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("failed to get encounter: %s", errorResp.Error)
	}

	var snap encounter.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse encounter response: %w", err)
	}
	return &snap, nil
}

func deleteEncounter(client *http.Client, baseURL, slug string) error {
	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/v1/encounters/%s", baseURL, slug), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	if resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(resp.Body)
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return fmt.Errorf("failed to delete encounter: %s", errorResp.Error)
	}
	return nil
}

func listMonsters(client *http.Client, baseURL string) ([]string, map[string]string, error) {
	resp, err := client.Get(baseURL + "/v1/monsters")
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}

	var payload struct {
		Monsters map[string]string `json:"monsters"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, nil, err
	}

	// Build display map: name -> id
	monsterMap := make(map[string]string)
	var names []string
	for id, name := range payload.Monsters {
		names = append(names, name)
		monsterMap[name] = id
	}
	sort.Strings(names)
	return names, monsterMap, nil
}

func getMonster(client *http.Client, baseURL, id string) (*bestiary.Monster, error) {
	resp, err := client.Get(fmt.Sprintf("%s/v1/monsters/%s", baseURL, id))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get monster: %s", string(bytes.TrimSpace(body)))
	}

	var monster bestiary.Monster
	if err := json.Unmarshal(body, &monster); err != nil {
		return nil, fmt.Errorf("failed to parse monster response: %w", err)
	}
	return &monster, nil
}

func listPartyMembers(client *http.Client, baseURL string) ([]string, map[string]string, error) {
	resp, err := client.Get(baseURL + "/v1/pcs")
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}

	// API returns an array of PC summaries, not a map
	var pcList []map[string]interface{}
	if err := json.Unmarshal(body, &pcList); err != nil {
		return nil, nil, err
	}

	// Build display map: name -> id
	pcMap := make(map[string]string)
	var names []string
	for _, pc := range pcList {
		id, okID := pc["id"].(string)
		name, okName := pc["name"].(string)
		if okID && okName {
			displayName := name
			// Add class/level info if available for better display
			if class, ok := pc["class"].(string); ok && class != "" {
				if level, ok := pc["level"].(float64); ok {
					displayName = fmt.Sprintf("%s (Level %d %s)", name, int(level), class)
				} else {
					displayName = fmt.Sprintf("%s (%s)", name, class)
				}
			}
			names = append(names, displayName)
			pcMap[displayName] = id
		}
	}

	sort.Strings(names)
	return names, pcMap, nil
}

func getPartyMember(client *http.Client, baseURL, id string) (*party.MemberSpec, error) {
	resp, err := client.Get(fmt.Sprintf("%s/v1/pcs/%s", baseURL, id))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get PC: %s", string(bytes.TrimSpace(body)))
	}

	var spec party.MemberSpec
	if err := json.Unmarshal(body, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse PC response: %w", err)
	}
	return &spec, nil
}
