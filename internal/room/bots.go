package room

import (
	"fmt"
	"math/rand"
	"time"
)

const botAvatar = "🤖"

// Agent decides for a bot. Its choices go through the same entry points as
// human intents.
type Agent interface {
	// ChooseSubmission returns pick distinct cards from hand, or fewer when
	// the hand is short.
	ChooseSubmission(hand []string, pick int) []string
	// Judge returns the index of the winning submission among n.
	Judge(n int) int
}

type randomAgent struct {
	rng *rand.Rand
}

func NewRandomAgent(rng *rand.Rand) Agent {
	return &randomAgent{rng: rng}
}

func (a *randomAgent) ChooseSubmission(hand []string, pick int) []string {
	pick = max(0, min(pick, len(hand)))
	out := make([]string, 0, pick)
	for _, i := range a.rng.Perm(len(hand))[:pick] {
		out = append(out, hand[i])
	}
	return out
}

func (a *randomAgent) Judge(n int) int {
	if n <= 0 {
		return -1
	}
	return a.rng.Intn(n)
}

func (r *Room) botName() string {
	bots := 0
	for _, p := range r.players {
		if p.IsBot {
			bots++
		}
	}
	for n := bots + 1; ; n++ {
		name := fmt.Sprintf("Bot %d %s", n, botAvatar)
		if _, p := r.playerByName(name); p == nil {
			return name
		}
	}
}

func (r *Room) addBot(from string) {
	if !r.isAdmin(from) {
		r.log.Debug().Str("from", from).Msg("add_bot ignored: not admin")
		return
	}
	bot := &Player{
		ID:         r.botID(),
		Username:   r.botName(),
		Avatar:     botAvatar,
		DrawRights: r.rules.DrawRights,
		IsOnline:   true,
		IsBot:      true,
	}
	r.topUp(bot)
	r.players = append(r.players, bot)
	r.log.Info().Str("username", bot.Username).Str("id", bot.ID).Msg("bot added")

	r.rebindAdmin()
	r.broadcastRoster()
	if r.state == PhasePlaying {
		r.scheduleBotPlay(bot)
	}
}

func (r *Room) driveBotPlays() {
	for _, p := range r.players {
		if p.IsBot && r.canSubmit(p) {
			r.scheduleBotPlay(p)
		}
	}
}

func (r *Room) scheduleBotPlay(bot *Player) {
	delay := r.timings.BotPlayMin
	if span := r.timings.BotPlayMax - r.timings.BotPlayMin; span > 0 {
		delay += time.Duration(r.rng.Int63n(int64(span) + 1))
	}
	r.after(delay, botPlay{gen: r.gen, botID: bot.ID})
}

func (r *Room) onBotPlay(in botPlay) {
	if in.gen != r.gen || r.state != PhasePlaying {
		return
	}
	_, bot := r.playerByID(in.botID)
	if bot == nil || !bot.IsBot || !r.canSubmit(bot) {
		return
	}
	need := r.prompt.Pick - len(bot.Pending)
	for _, card := range r.agent.ChooseSubmission(bot.Hand, need) {
		if r.state != PhasePlaying || !r.canSubmit(bot) {
			return
		}
		r.submitCard(bot.ID, card)
	}
}

// driveBotJudge starts the reveal-then-pick sequence when a bot judges.
func (r *Room) driveBotJudge() {
	if r.state != PhaseJudging {
		return
	}
	_, judge := r.playerByID(r.judgeID)
	if judge == nil || !judge.IsBot {
		return
	}
	r.after(r.timings.BotRevealDelay, botReveal{gen: r.gen})
}

func (r *Room) onBotReveal(gen uint64) {
	if gen != r.gen || r.state != PhaseJudging {
		return
	}
	all := make([]int, len(r.submissions))
	for i := range all {
		all[i] = i
	}
	r.reveal(r.judgeID, all...)
	r.after(r.timings.BotPickDelay, botPick{gen: r.gen})
}

func (r *Room) onBotPick(gen uint64) {
	if gen != r.gen || r.state != PhaseJudging {
		return
	}
	r.pickWinner(r.judgeID, r.agent.Judge(len(r.submissions)))
}
