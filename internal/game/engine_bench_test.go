package game

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/jerold/Halite/internal/agent"
	"github.com/jerold/Halite/internal/game/core"
	"github.com/jerold/Halite/internal/game/events"
	"github.com/jerold/Halite/internal/game/mapgen"
	"github.com/jerold/Halite/internal/game/processor"
	"github.com/jerold/Halite/internal/testutil"
)

func createBenchEngine(b *testing.B, size, players int) *Engine {
	b.Helper()
	engine, err := NewEngine(context.Background(), GameConfig{
		Width:    size,
		Height:   size,
		Players:  players,
		MaxTurns: 1 << 20,
		Rng:      testutil.NewTestRNG(12345),
		Logger:   zerolog.Nop(),
	})
	if err != nil {
		b.Fatal(err)
	}
	return engine
}

func BenchmarkUpdatePlayerStats(b *testing.B) {
	for _, size := range []int{20, 30, 50} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			engine := createBenchEngine(b, size, 4)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				engine.updatePlayerStats()
			}
			b.ReportMetric(float64(size*size), "board_tiles")
		})
	}
}

func BenchmarkCombatResolve(b *testing.B) {
	for _, size := range []int{20, 30, 50} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			gen := mapgen.NewGenerator(mapgen.DefaultMapConfig(size, size, 2), testutil.NewTestRNG(1))
			base, _, err := gen.GenerateMap()
			if err != nil {
				b.Fatal(err)
			}
			// Half the board owned by player 1, all pushing east into the other half.
			intents := make(processor.Intents)
			for y := 0; y < size; y++ {
				for x := 0; x < size/2; x++ {
					base.Contents[y][x].Owner = 1
					intents[core.Location{X: x, Y: y}] = core.EAST
				}
			}
			cr := NewCombatResolver(events.NewEventBus(zerolog.Nop()), "bench", zerolog.Nop())

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				b.StopTimer()
				m := base.Clone()
				b.StartTimer()
				cr.Resolve(m, intents, i)
			}
		})
	}
}

func BenchmarkEngineStepWithAgents(b *testing.B) {
	for _, size := range []int{20, 30} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			engine := createBenchEngine(b, size, 2)
			bot := agent.New(5, zerolog.Nop())
			ctx := context.Background()

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if engine.IsGameOver() {
					b.StopTimer()
					engine = createBenchEngine(b, size, 2)
					b.StartTimer()
				}
				m := engine.Map()
				moves := map[int]core.MoveSet{
					1: bot.Moves(m, 1),
					2: bot.Moves(m, 2),
				}
				if err := engine.Step(ctx, moves); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
