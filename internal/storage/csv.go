package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/P4GAN/PhysicsSims/internal/sim"
)

// WriteStatesCSV writes one row per frame: time, then x and y of every
// particle in chain order.
func WriteStatesCSV(out io.Writer, result *sim.Result) error {
	w := csv.NewWriter(out)

	if len(result.States) == 0 {
		w.Flush()
		return w.Error()
	}

	header := []string{"time"}
	for i := 0; i < len(result.States[0])/2; i++ {
		header = append(header, fmt.Sprintf("x%d", i), fmt.Sprintf("y%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range result.States {
		row := []string{strconv.FormatFloat(result.Times[i], 'f', 6, 64)}
		for _, val := range result.States[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
