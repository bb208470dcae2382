package probe

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github/chapool/tron-custody/internal/config"
)

const probeTimeout = 5 * time.Second

func newLiveness() *cobra.Command {
	return &cobra.Command{
		Use:   "liveness",
		Short: "Checks the server liveness endpoint",
		Run: func(_ *cobra.Command, _ []string) {
			runProbe("/-/healthy")
		},
	}
}

// runProbe hits a local management endpoint and exits non-zero on any
// non-200 answer. Intended as container health check.
func runProbe(path string) {
	cfg := config.DefaultServiceConfigFromEnv()

	client := &http.Client{Timeout: probeTimeout}
	res, err := client.Get("http://localhost" + cfg.Echo.ListenAddress + path) //nolint:noctx
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
	fmt.Println(string(body))

	if res.StatusCode != http.StatusOK {
		os.Exit(1)
	}
}
