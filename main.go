package main

import (
	"log"
	"os"

	"food-diary/internal/cli"
	"food-diary/internal/clock"
	"food-diary/internal/config"
	"food-diary/internal/diary"
	"food-diary/internal/rollover"
	"food-diary/internal/storage"
	"food-diary/internal/summary"
	"food-diary/internal/utils"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
)

func main() {
	_ = godotenv.Load() // FOOD_DIARY_* overrides

	cfg := config.Load()

	kv, err := storage.Open(cfg)
	utils.Must(err)
	defer kv.Close()

	clk, err := clock.New(clockwork.NewRealClock(), cfg.Timezone)
	utils.Must(err)

	days := diary.NewStore(kv, clk)
	sums := summary.NewStore(kv)
	mon := rollover.New(clk, days, sums, cfg.PollInterval)

	app := cli.New(days, sums, clk, mon)
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
