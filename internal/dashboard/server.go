package dashboard

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/qepting91/signal-filter/internal/domain"
	"github.com/qepting91/signal-filter/internal/storage"
)

// NewHandler serves the charts page at /, the live banner at /status and
// Prometheus metrics at /metrics.
func NewHandler(dataFile string, status *Status) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(status.Current())
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		verdicts, err := storage.LoadVerdicts(dataFile)
		if err != nil {
			slog.Warn("load verdicts", "path", dataFile, "err", err)
		}
		stats := Summarize(verdicts)

		// 1. Why posts were hidden
		pie := charts.NewPie()
		pie.SetGlobalOptions(
			charts.WithTitleOpts(opts.Title{Title: "Hidden by Rule"}),
			charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		)
		var pieItems []opts.PieData
		for _, reason := range domain.AllReasons {
			if n := stats.ByReason[reason]; n > 0 {
				pieItems = append(pieItems, opts.PieData{Name: string(reason), Value: n})
			}
		}
		pie.AddSeries("Posts", pieItems)

		// 2. Signal per submolt
		bar := charts.NewBar()
		bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Kept vs Hidden per Submolt"}))
		var barX []string
		var kept, hidden []opts.BarData
		for _, name := range stats.submolts() {
			c := stats.BySubmolt[name]
			barX = append(barX, name)
			kept = append(kept, opts.BarData{Value: c.Kept})
			hidden = append(hidden, opts.BarData{Value: c.Hidden})
		}
		bar.SetXAxis(barX).
			AddSeries("Kept", kept).
			AddSeries("Hidden", hidden)

		if msg := status.Current(); msg.Active {
			_, _ = w.Write([]byte(`<div id="signal-filter-stats">` + msg.Text + `</div>`))
		}
		_ = pie.Render(w)
		_ = bar.Render(w)
	})

	return mux
}

func StartServer(dataFile, port string, status *Status) error {
	return http.ListenAndServe(":"+port, NewHandler(dataFile, status))
}

// SubmoltCounts holds per-feed totals.
type SubmoltCounts struct {
	Kept   int
	Hidden int
}

// Stats aggregates stored verdicts for the charts.
type Stats struct {
	Total     int
	Hidden    int
	ByReason  map[domain.Reason]int
	BySubmolt map[string]SubmoltCounts
}

func Summarize(verdicts []domain.Verdict) Stats {
	s := Stats{
		ByReason:  make(map[domain.Reason]int),
		BySubmolt: make(map[string]SubmoltCounts),
	}
	for _, v := range verdicts {
		s.Total++
		c := s.BySubmolt[v.Post.Submolt]
		if v.Hidden {
			s.Hidden++
			c.Hidden++
			for _, r := range v.Reasons {
				s.ByReason[r]++
			}
		} else {
			c.Kept++
		}
		s.BySubmolt[v.Post.Submolt] = c
	}
	return s
}

func (s Stats) submolts() []string {
	names := make([]string, 0, len(s.BySubmolt))
	for name := range s.BySubmolt {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
