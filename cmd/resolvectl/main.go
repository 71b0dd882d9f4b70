package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Ware71/CIAGA-sub002/pkg/common/models"
)

var (
	serverURL string
	city      string
	country   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "resolvectl",
		Short: "Client for the course resolver service",
	}
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "resolver service base URL")

	resolveCmd := &cobra.Command{
		Use:   "resolve <osm_id> <name> <lat> <lng>",
		Short: "Resolve one location record against the catalog",
		Args:  cobra.ExactArgs(4),
		RunE:  runResolve,
	}
	resolveCmd.Flags().StringVar(&city, "city", "", "city, if known")
	resolveCmd.Flags().StringVar(&country, "country", "", "country, if known")
	rootCmd.AddCommand(resolveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runResolve(cmd *cobra.Command, args []string) error {
	var lat, lng float64
	if _, err := fmt.Sscanf(args[2], "%f", &lat); err != nil {
		return fmt.Errorf("invalid lat %q", args[2])
	}
	if _, err := fmt.Sscanf(args[3], "%f", &lng); err != nil {
		return fmt.Errorf("invalid lng %q", args[3])
	}

	req := models.ResolveRequest{
		OSMID:   args[0],
		Name:    args[1],
		Lat:     lat,
		Lng:     lng,
		City:    city,
		Country: country,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Post(serverURL+"/api/v1/courses/resolve", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("calling resolver: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("resolver returned %d: %s", resp.StatusCode, payload)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, payload, "", "  "); err != nil {
		fmt.Println(string(payload))
		return nil
	}
	fmt.Println(pretty.String())
	return nil
}
