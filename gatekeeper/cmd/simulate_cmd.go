package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/shirou/gopsutil/process"
	"github.com/spf13/cobra"
	"github.com/syifan/goseth"

	"github.com/sarchlab/gatekeeper/datarecording"
	"github.com/sarchlab/gatekeeper/simulation"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <scenario.yaml>...",
	Short: "Replay scenarios against a simulated gate",
	Long: `Replay scenarios against a simulated gate. Every scenario runs on ` +
		`its own gate and simulated clock. The command fails if a scenario ` +
		`does not meet its expectations.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return runSimulate(cmd, args)
	},
}

func init() {
	simulateCmd.Flags().String("record", "",
		"record the passages into <path>.sqlite3 (default GATE_RECORD_PATH)")
	simulateCmd.Flags().BoolP("verbose", "v", false,
		"print passages and panel changes as they happen")
	simulateCmd.Flags().Bool("dump-state", false,
		"print the state of every gate at the end")
	simulateCmd.Flags().Bool("resources", false,
		"print the CPU and memory used by the simulation")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, paths []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	scenarios := make([]*simulation.Scenario, 0, len(paths))

	for _, path := range paths {
		s, err := simulation.LoadScenario(path)
		if err != nil {
			return err
		}

		scenarios = append(scenarios, s)
	}

	recordPath, _ := cmd.Flags().GetString("record")
	if recordPath == "" {
		recordPath = cfg.RecordPath
	}

	var recorder *datarecording.SQLiteWriter

	if recordPath != "" {
		recorder, err = datarecording.New(recordPath)
		if err != nil {
			return fmt.Errorf("opening passage record: %w", err)
		}

		defer recorder.Close()
	}

	var logger *log.Logger

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger = log.New(cmd.ErrOrStderr(), "", 0)
	}

	var sims []*simulation.Simulation

	results, runErr := simulation.RunAll(cmd.Context(), scenarios, cfg,
		func(s *simulation.Scenario) *simulation.Simulation {
			b := simulation.MakeBuilder().
				WithStartTime(s.Start).
				WithLogger(logger)
			if recorder != nil {
				b = b.WithDataRecorder(recorder)
			}

			sim := b.Build()
			sims = append(sims, sim)

			return sim
		})

	out := cmd.OutOrStdout()
	printResults(out, results, sims)

	if recorder != nil {
		fmt.Fprintf(out, "passages recorded in %s\n", recorder.FileName())
	}

	if dump, _ := cmd.Flags().GetBool("dump-state"); dump {
		if err := dumpState(out, sims); err != nil {
			return err
		}
	}

	if res, _ := cmd.Flags().GetBool("resources"); res {
		if err := printResources(out); err != nil {
			return err
		}
	}

	if errors.Is(runErr, simulation.ErrScenarioFailed) {
		return fmt.Errorf("%d of %d scenarios failed",
			countFailed(results), len(scenarios))
	}

	return runErr
}

func printResults(
	w io.Writer,
	results []simulation.Result,
	sims []*simulation.Simulation,
) {
	for i, r := range results {
		verdict := "PASS"
		if !r.Passed() {
			verdict = "FAIL"
		}

		fmt.Fprintf(w, "%s %s: count=%d cycles=%d state=%s elapsed=%s\n",
			verdict, r.Name, r.Count, r.GateCycles, r.State, r.Elapsed)

		for _, f := range r.Failures {
			fmt.Fprintf(w, "    %s\n", f)
		}

		if i < len(sims) {
			printStatistics(w, sims[i])
		}
	}
}

func printStatistics(w io.Writer, sim *simulation.Simulation) {
	timer := sim.GetPassageTimer()
	if timer.TotalCount() > 0 {
		fmt.Fprintf(w, "    passages=%d average=%s\n",
			timer.TotalCount(), timer.AverageTime())
	}

	counter := sim.GetStepCounter()
	for _, name := range counter.GetStepNames() {
		fmt.Fprintf(w, "    %s=%d\n", name, counter.GetStepCount(name))
	}
}

func countFailed(results []simulation.Result) int {
	n := 0

	for _, r := range results {
		if !r.Passed() {
			n++
		}
	}

	return n
}

func dumpState(w io.Writer, sims []*simulation.Simulation) error {
	for _, sim := range sims {
		for _, gate := range sim.Gates() {
			serializer := goseth.NewSerializer()
			serializer.SetRoot(gate)
			serializer.SetMaxDepth(1)

			if err := serializer.Serialize(w); err != nil {
				return err
			}

			fmt.Fprintln(w)
		}
	}

	return nil
}

func printResources(w io.Writer) error {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return err
	}

	memory, err := p.MemoryInfo()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "cpu=%.1f%% rss=%d bytes\n", cpuPercent, memory.RSS)

	return nil
}
