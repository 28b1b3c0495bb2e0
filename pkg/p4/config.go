package p4

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Servers are the known Perforce endpoints, keyed by network.
var Servers = map[string]string{
	"internal": "perforce:1666",
	"vpn":      "perforce-proxy-vpn.epicgames.net:1666",
}

// DepotAliases maps short names to depot roots so commands accept
// "fn" instead of //Fortnite/Main.
var DepotAliases = map[string]string{
	"fortnite":         "//Fortnite/Main",
	"fn":               "//Fortnite/Main",
	"fortnite-release": "//Fortnite/Release-*",
	"ue5":              "//UE5/Main",
	"ue4":              "//UE4/Main",
	"eos":              "//EOSSDK/Main",
	"3rdparty":         "//depot/3rdParty",
	"thirdparty":       "//depot/3rdParty",
	"tools":            "//depot/InternalTools",
	"plugins":          "//GamePlugins",
}

// AliasNames returns the alias table keys in lexical order.
func AliasNames() []string {
	names := make([]string, 0, len(DepotAliases))
	for name := range DepotAliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveDepotPath expands an alias or bare path to a full depot path.
// Aliases are matched case-insensitively; anything else just gets the
// leading // normalized.
func ResolveDepotPath(path string) string {
	if resolved, ok := DepotAliases[strings.ToLower(path)]; ok {
		return resolved
	}
	if !strings.HasPrefix(path, "//") {
		return "//" + path
	}
	return path
}

// envVars p4 reads its connection settings from.
var envVars = []string{"P4PORT", "P4USER", "P4CLIENT", "P4CONFIG"}

// EnvConfig collects the Perforce connection settings, preferring the
// environment and falling back to `p4 set -q` when nothing is set.
func EnvConfig(ctx context.Context) map[string]string {
	config := make(map[string]string)
	for _, name := range envVars {
		if value := os.Getenv(name); value != "" {
			config[name] = value
		}
	}
	if len(config) > 0 {
		return config
	}

	runner := &Runner{Timeout: configTimeout}
	out, err := runner.Run(ctx, "set", "-q")
	if err != nil {
		return config
	}
	return parseSetOutput(out)
}

// parseSetOutput parses `p4 set -q` lines of the form KEY=value, where
// value may carry a trailing "(set)" or "(config)" marker.
func parseSetOutput(out string) map[string]string {
	config := make(map[string]string)
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		value, _, _ = strings.Cut(value, "(")
		config[key] = strings.TrimSpace(value)
	}
	return config
}

// VerifyConnection runs `p4 info` and summarizes who is connected to
// what. Timeout and missing binary surface as their sentinel errors.
func VerifyConnection(ctx context.Context) (string, error) {
	runner := &Runner{Timeout: infoTimeout}
	out, err := runner.Run(ctx, "info")
	if err != nil {
		return "", err
	}

	var server, user string
	for _, line := range strings.Split(out, "\n") {
		if rest, ok := strings.CutPrefix(line, "Server address:"); ok {
			server = strings.TrimSpace(rest)
		} else if rest, ok := strings.CutPrefix(line, "User name:"); ok {
			user = strings.TrimSpace(rest)
		}
	}
	return fmt.Sprintf("Connected as %s to %s", user, server), nil
}

// ServerSuggestion returns the hint printed when a connection check
// fails.
func ServerSuggestion() string {
	return fmt.Sprintf(
		"If not connected, try:\n  Internal network: export P4PORT=%s\n  VPN connection:   export P4PORT=%s",
		Servers["internal"], Servers["vpn"],
	)
}
