// Command botmatch plays a whole game between bots in a single room and
// prints the outcome of every round.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"party-cards/internal/cards"
	"party-cards/internal/config"
	"party-cards/internal/logger"
	"party-cards/internal/room"
	"party-cards/internal/shared"

	"github.com/pterm/pterm"
)

// console prints what a spectator would see.
type console struct {
	names  map[string]string
	roster []shared.PlayerView
	last   shared.InfoView
	over   chan shared.InfoView
	prompt string
}

func (c *console) Broadcast(_ string, action string, data interface{}) {
	switch action {
	case room.ActionUserList:
		c.roster = data.([]shared.PlayerView)
		for _, p := range c.roster {
			c.names[p.ID] = p.Username
		}
	case room.ActionPrompt:
		c.prompt = data.(shared.PromptView).Text
	case room.ActionTable:
		if c.last.State != string(room.PhaseResult) {
			return
		}
		for _, g := range data.([]shared.GroupView) {
			if g.OwnerID == c.last.WinnerID {
				pterm.Info.Printfln("%s -> %s", c.prompt, strings.Join(g.Cards, " / "))
			}
		}
	case room.ActionGameInfo:
		info := data.(shared.InfoView)
		prev := c.last
		c.last = info
		switch {
		case info.State == string(room.PhasePlaying) && (prev.State != info.State || prev.Round != info.Round):
			pterm.DefaultSection.Printfln("Round %d, judge %s", info.Round, c.names[info.JudgeID])
		case info.State == string(room.PhaseResult) && prev.State != info.State:
			if info.WinnerID == "" {
				pterm.Warning.Println("no winner")
			} else {
				pterm.Success.Printfln("%s takes the round", c.names[info.WinnerID])
			}
		case info.State == string(room.PhaseGameOver):
			select {
			case c.over <- info:
			default:
			}
		}
	}
}

// scoreboard renders the final standings.
func (c *console) scoreboard() error {
	rows := slices.Clone(c.roster)
	slices.SortStableFunc(rows, func(a, b shared.PlayerView) int { return b.Score - a.Score })
	data := pterm.TableData{{"Player", "Score"}}
	for _, p := range rows {
		data = append(data, []string{p.Username, strconv.Itoa(p.Score)})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func (c *console) Send(string, string, interface{}) {}
func (c *console) Attach(string, string)            {}
func (c *console) Detach(string, string)            {}
func (c *console) CloseRoom(string)                 {}

func main() {
	bots := flag.Int("bots", 4, "number of bots")
	target := flag.Int("score", 3, "points needed to win")
	speed := flag.Duration("tick", 50*time.Millisecond, "base delay between bot actions")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogPretty)
	if *bots < cfg.Rules.MinPlayers {
		fmt.Fprintf(os.Stderr, "need at least %d bots\n", cfg.Rules.MinPlayers)
		os.Exit(2)
	}

	pool, err := cards.Load(cfg.CardsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("load cards")
	}

	cfg.Rules.DefaultTargetScore = *target
	cfg.Timings = config.Timings{
		ResultDelay:    2 * *speed,
		BotPlayMin:     *speed,
		BotPlayMax:     4 * *speed,
		BotRevealDelay: *speed,
		BotPickDelay:   *speed,
	}

	out := &console{names: map[string]string{}, over: make(chan shared.InfoView, 1)}
	n := 0
	r := room.New(room.Options{
		Code:    "botmatch",
		Rules:   cfg.Rules,
		Timings: cfg.Timings,
		Pool:    pool,
		Out:     out,
		Rand:    rand.New(rand.NewSource(*seed)),
		Logger:  log,
		BotID: func() string {
			n++
			return fmt.Sprintf("bot-%d", n)
		},
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	// The host only seeds the room; once it leaves, the first bot holds admin
	// and starts the game through the same entry point a client uses.
	const host = "host"
	intents := []room.Intent{room.Join{Username: host}}
	for i := 0; i < *bots; i++ {
		intents = append(intents, room.AddBot{})
	}
	intents = append(intents, room.Disconnect{})
	for _, in := range intents {
		if err := r.Post(host, in); err != nil {
			log.Fatal().Err(err).Msg("seed room")
		}
	}
	if err := r.Post("bot-1", room.Start{}); err != nil {
		log.Fatal().Err(err).Msg("start")
	}

	s, err := r.Summary(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("summary")
	}
	pterm.DefaultHeader.Printfln("room %s: %d bots, first to %d", s.Code, s.Bots, *target)

	select {
	case info := <-out.over:
		pterm.Success.Printfln("game over after %d rounds, winner %s", info.Round, out.names[info.WinnerID])
		if err := out.scoreboard(); err != nil {
			log.Error().Err(err).Msg("render scoreboard")
		}
	case <-time.After(time.Duration(*target * *bots * 40) * *speed):
		pterm.Error.Println("timed out")
		os.Exit(1)
	}
}
