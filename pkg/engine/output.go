package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"text/tabwriter"

	"github.com/cawaltrip/EvoComp-SymbolicRegression/pkg/individual"
	"github.com/cawaltrip/EvoComp-SymbolicRegression/pkg/population"
	"github.com/cawaltrip/EvoComp-SymbolicRegression/pkg/store"
)

// Float is a float64 that survives JSON encoding when it is not finite:
// ±Inf and NaN are written as the strings "+Inf", "-Inf" and "NaN".
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return []byte(strconv.Quote(strconv.FormatFloat(v, 'g', -1, 64))), nil
	}
	return json.Marshal(v)
}

func (f *Float) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		s, err := strconv.Unquote(string(b))
		if err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*f = Float(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

// GenerationReport summarizes one generation.
type GenerationReport struct {
	Generation     int     `json:"generation"`
	BestFitness    Float   `json:"best_fitness"`
	WorstFitness   Float   `json:"worst_fitness"`
	AvgFitness     Float   `json:"avg_fitness"`
	BestWeighted   Float   `json:"best_weighted"`
	WorstWeighted  Float   `json:"worst_weighted"`
	AvgWeighted    Float   `json:"avg_weighted"`
	SmallestSize   int     `json:"smallest_size"`
	LargestSize    int     `json:"largest_size"`
	AvgSize        float64 `json:"avg_size"`
	TotalNodes     int     `json:"total_nodes"`
	Parsimony      Float   `json:"parsimony"`
	BestExpression string  `json:"best_expression"`
}

// FinalReport summarizes the entire run.
type FinalReport struct {
	RunID          string             `json:"run_id"`
	Seed           int64              `json:"seed"`
	Config         Config             `json:"config"`
	Generations    int                `json:"generations"`
	BestExpression string             `json:"best_expression"`
	BestLaTeX      string             `json:"best_latex"`
	Simplified     string             `json:"simplified"`
	SimplifiedTeX  string             `json:"simplified_latex"`
	BestFitness    Float              `json:"best_fitness"`
	BestSize       int                `json:"best_size"`
	BestDepth      int                `json:"best_depth"`
	BestFoundAtGen int                `json:"best_found_at_gen"`
	History        []GenerationReport `json:"history,omitempty"`
}

func newGenerationReport(gen int, s population.Stats, best *individual.Individual) GenerationReport {
	return GenerationReport{
		Generation:     gen,
		BestFitness:    Float(s.BestFitness),
		WorstFitness:   Float(s.WorstFitness),
		AvgFitness:     Float(s.AvgFitness),
		BestWeighted:   Float(s.BestWeighted),
		WorstWeighted:  Float(s.WorstWeighted),
		AvgWeighted:    Float(s.AvgWeighted),
		SmallestSize:   s.SmallestSize,
		LargestSize:    s.LargestSize,
		AvgSize:        s.AvgSize,
		TotalNodes:     s.TotalNodes,
		Parsimony:      Float(s.Parsimony),
		BestExpression: best.String(),
	}
}

func (r GenerationReport) record(runID string) store.GenerationRecord {
	return store.GenerationRecord{
		RunID:         runID,
		Generation:    r.Generation,
		BestFitness:   float64(r.BestFitness),
		WorstFitness:  float64(r.WorstFitness),
		AvgFitness:    float64(r.AvgFitness),
		BestWeighted:  float64(r.BestWeighted),
		WorstWeighted: float64(r.WorstWeighted),
		AvgWeighted:   float64(r.AvgWeighted),
		SmallestSize:  r.SmallestSize,
		LargestSize:   r.LargestSize,
		AvgSize:       r.AvgSize,
		TotalNodes:    r.TotalNodes,
		Parsimony:     float64(r.Parsimony),
		Best:          r.BestExpression,
	}
}

func reportFromRecord(rec store.GenerationRecord) GenerationReport {
	return GenerationReport{
		Generation:     rec.Generation,
		BestFitness:    Float(rec.BestFitness),
		WorstFitness:   Float(rec.WorstFitness),
		AvgFitness:     Float(rec.AvgFitness),
		BestWeighted:   Float(rec.BestWeighted),
		WorstWeighted:  Float(rec.WorstWeighted),
		AvgWeighted:    Float(rec.AvgWeighted),
		SmallestSize:   rec.SmallestSize,
		LargestSize:    rec.LargestSize,
		AvgSize:        rec.AvgSize,
		TotalNodes:     rec.TotalNodes,
		Parsimony:      Float(rec.Parsimony),
		BestExpression: rec.Best,
	}
}

func (r GenerationReport) text() string {
	return fmt.Sprintf("Gen %4d | Best: %.6f | Avg: %.6f | Size: %d-%d (avg %.1f) | c=%.4f | %s",
		r.Generation, float64(r.BestFitness), float64(r.AvgFitness),
		r.SmallestSize, r.LargestSize, r.AvgSize, float64(r.Parsimony), r.BestExpression)
}

// WriteTextReport writes a generation report in human-readable format.
func WriteTextReport(w io.Writer, r GenerationReport) {
	fmt.Fprintln(w, r.text())
}

// WriteTextFinal writes the final report in human-readable format.
func WriteTextFinal(w io.Writer, r FinalReport) {
	fmt.Fprintln(w, "\n========== FINAL RESULT ==========")
	fmt.Fprintf(w, "Run:         %s\n", r.RunID)
	fmt.Fprintf(w, "Seed:        %d\n", r.Seed)
	fmt.Fprintf(w, "Generations: %d\n", r.Generations)
	fmt.Fprintf(w, "Best:        %s\n", r.BestExpression)
	fmt.Fprintf(w, "LaTeX:       %s\n", r.BestLaTeX)
	if r.Simplified != "" && r.Simplified != r.BestExpression {
		fmt.Fprintf(w, "Simplified:  %s\n", r.Simplified)
	}
	fmt.Fprintf(w, "Fitness:     %.6f\n", float64(r.BestFitness))
	fmt.Fprintf(w, "Size:        %d (depth %d)\n", r.BestSize, r.BestDepth)
	fmt.Fprintf(w, "Found at:    generation %d\n", r.BestFoundAtGen)
	fmt.Fprintln(w, "==================================")
}

// WriteJSONFinal writes the final report as JSON.
func WriteJSONFinal(w io.Writer, r FinalReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteStatsTable writes one tab-aligned row of statistics per generation.
func WriteStatsTable(w io.Writer, reports []GenerationReport) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "gen\tbest\tworst\tavg\tbest_w\tworst_w\tavg_w\tmin_size\tmax_size\tavg_size\tnodes\tparsimony\tbest_expression")
	for _, r := range reports {
		fmt.Fprintf(tw, "%d\t%g\t%g\t%g\t%g\t%g\t%g\t%d\t%d\t%.2f\t%d\t%g\t%s\n",
			r.Generation, float64(r.BestFitness), float64(r.WorstFitness), float64(r.AvgFitness),
			float64(r.BestWeighted), float64(r.WorstWeighted), float64(r.AvgWeighted),
			r.SmallestSize, r.LargestSize, r.AvgSize, r.TotalNodes, float64(r.Parsimony), r.BestExpression)
	}
	return tw.Flush()
}
