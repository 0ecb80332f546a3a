package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"trip-assignment-service/internal/adapters/workbook"
	"trip-assignment-service/internal/config"
	"trip-assignment-service/internal/platform/obs"
	"trip-assignment-service/internal/services"
)

// assign plans trips for one workbook offline and writes the result as a
// new workbook.
func main() {
	config.LoadEnv()

	in := flag.String("in", "", "input workbook with Tasks, Runsheet and Fallback sheets")
	out := flag.String("out", "assigned-trips.xlsx", "output workbook")
	vehicle := flag.String("vehicle", "", "vehicle type (default from config)")
	trucks := flag.Int("trucks", 1, "number of trucks of the vehicle type dispatched together")
	suppliers := flag.String("suppliers", "", "comma separated supplier keys or names to plan (default all)")
	flag.Parse()

	if strings.TrimSpace(*in) == "" {
		log.Fatal("-in is required")
	}

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal(err)
	}

	if err := run(cfg, *in, *out, *vehicle, *trucks, splitList(*suppliers)); err != nil {
		log.Fatal(err)
	}
}

func run(cfg *config.Config, in, out, vehicle string, trucks int, suppliers []string) (err error) {
	src, err := workbook.OpenSource(in)
	if err != nil {
		return err
	}
	defer src.Close()

	ctx := obs.WithRequestID(context.Background(), "cli")
	svc := services.NewAssignmentService(src, cfg.Vehicles, cfg.DefaultVehicle, cfg.Planner)

	result, err := svc.Run(ctx, services.AssignmentRequest{
		VehicleType: vehicle,
		TruckCount:  trucks,
		Suppliers:   suppliers,
	})
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %q: %w", out, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %q: %w", out, cerr)
		}
	}()

	if err := workbook.Export(f, result.Orders); err != nil {
		return err
	}

	for _, w := range result.Warnings {
		log.Printf("warning: %s", w)
	}
	log.Printf("run_id=%s orders=%d trips=%d out=%s", result.RunID, len(result.Orders), len(result.Trips), out)
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
