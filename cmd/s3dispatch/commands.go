package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/alexshd/dispatch"
	"github.com/spf13/cobra"
)

func loadFrame(path string) (dispatch.Frame, error) {
	if path == "" {
		return dispatch.Cars(), nil
	}
	return dispatch.LoadFrameFile(path)
}

func newSummaryCmd() *cobra.Command {
	var dataPath, column string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize a dataset or one of its columns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			frame, err := loadFrame(dataPath)
			if err != nil {
				return err
			}

			var x dispatch.Classed = frame
			if column != "" {
				values, err := frame.Column(column)
				if err != nil {
					return err
				}
				x = dispatch.Vector(values)
			}

			out, err := dispatch.Dispatch(dispatch.MethodSummary, x)
			if err != nil {
				return err
			}
			return printSummary(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "", "YAML dataset (default: embedded cars dataset)")
	cmd.Flags().StringVar(&column, "column", "", "Summarize only this column")
	return cmd
}

func newRSSCmd() *cobra.Command {
	var (
		dataPath string
		xName    string
		yName    string
		model    string
		treeCfg  = dispatch.DefaultTreeConfig()
	)

	cmd := &cobra.Command{
		Use:   "rss",
		Short: "Fit a model and print its residual sum of squares",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			frame, err := loadFrame(dataPath)
			if err != nil {
				return err
			}
			x, err := frame.Column(xName)
			if err != nil {
				return err
			}
			y, err := frame.Column(yName)
			if err != nil {
				return err
			}

			var fit dispatch.Classed
			switch model {
			case "lm":
				fit, err = dispatch.FitLinear(x, y)
			case "glm":
				fit, err = dispatch.FitPoisson(x, y)
			case "rpart":
				fit, err = dispatch.FitTree(x, y, treeCfg)
			default:
				return fmt.Errorf("unknown model %q (want lm, glm or rpart)", model)
			}
			if err != nil {
				return fmt.Errorf("fit %s: %w", model, err)
			}

			_, class, _ := dispatch.Default().Resolve(dispatch.MethodRSS, fit)
			slog.Info("dispatching", "method", dispatch.MethodRSS, "classes", fit.Classes(), "selected", class)

			rss, err := dispatch.RSS(fit)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rss (%s ~ %s, %s): %.4f\n", yName, xName, model, rss)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "", "YAML dataset (default: embedded cars dataset)")
	cmd.Flags().StringVar(&xName, "x", "speed", "Predictor column")
	cmd.Flags().StringVar(&yName, "y", "dist", "Response column")
	cmd.Flags().StringVar(&model, "model", "lm", "Model to fit: lm, glm or rpart")
	cmd.Flags().IntVar(&treeCfg.MaxDepth, "max-depth", treeCfg.MaxDepth, "rpart: maximum depth")
	cmd.Flags().IntVar(&treeCfg.MinLeaf, "min-leaf", treeCfg.MinLeaf, "rpart: minimum observations per leaf")
	return cmd
}

func newMethodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods GENERIC",
		Short: "List the classes a generic has methods for",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			method := dispatch.Method(args[0])
			reg := dispatch.Default()
			w := cmd.OutOrStdout()

			classes := reg.Methods(method)
			if len(classes) == 0 && !reg.HasDefault(method) {
				return fmt.Errorf("no methods registered for %q", method)
			}
			for _, c := range classes {
				fmt.Fprintf(w, "%s.%s\n", method, c)
			}
			if reg.HasDefault(method) {
				fmt.Fprintf(w, "%s.default\n", method)
			}
			return nil
		},
	}
}

func printSummary(w io.Writer, out any) error {
	switch s := out.(type) {
	case dispatch.Summary:
		printStats(w, "", s)
	case dispatch.FrameSummary:
		fmt.Fprintf(w, "%d rows\n", s.Rows)
		for _, c := range s.Columns {
			printStats(w, c.Name, c.Summary)
		}
	default:
		return fmt.Errorf("cannot print summary of type %T", out)
	}
	return nil
}

func printStats(w io.Writer, name string, s dispatch.Summary) {
	if name != "" {
		fmt.Fprintf(w, "%s:\n", name)
	}
	fmt.Fprintf(w, "  Min.    %10.3f\n", s.Min)
	fmt.Fprintf(w, "  1st Qu. %10.3f\n", s.Q1)
	fmt.Fprintf(w, "  Median  %10.3f\n", s.Median)
	fmt.Fprintf(w, "  Mean    %10.3f\n", s.Mean)
	fmt.Fprintf(w, "  3rd Qu. %10.3f\n", s.Q3)
	fmt.Fprintf(w, "  Max.    %10.3f\n", s.Max)
}
