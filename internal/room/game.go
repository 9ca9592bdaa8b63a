package room

import (
	"slices"
	"time"
)

func (r *Room) start(from string) {
	if r.state != PhaseLobby {
		r.log.Debug().Str("state", string(r.state)).Msg("start ignored: not in lobby")
		return
	}
	if !r.isAdmin(from) {
		r.log.Debug().Str("from", from).Msg("start ignored: not admin")
		return
	}
	online := r.onlinePlayers()
	if len(online) < r.rules.MinPlayers {
		r.log.Debug().Int("online", len(online)).Int("required", r.rules.MinPlayers).Msg("start ignored: not enough players")
		return
	}

	r.round = 1
	r.winnerID = ""
	r.judgeCarried = false
	for _, p := range r.players {
		p.Score = 0
		p.Hand = nil
		p.Pending = nil
		p.HasSubmitted = false
		p.IsJudge = false
	}
	first := online[r.rng.Intn(len(online))]
	r.judgeIndex, _ = r.playerByID(first.ID)
	r.judgeID = first.ID
	r.log.Info().Int("players", len(online)).Str("judge", first.Username).Msg("game started")
	r.startRound()
}

// startRound enters PLAYING for the current round and judge.
func (r *Room) startRound() {
	r.enter(PhasePlaying)
	r.submissions = nil
	r.applyJudgeFlags()
	for _, p := range r.players {
		p.HasSubmitted = false
		p.Pending = nil
		p.DrawRights = r.rules.DrawRights
	}
	r.prompt = r.prompts.Draw()
	for _, p := range r.players {
		if p.IsOnline {
			r.topUp(p)
		}
	}
	r.startTimer(r.settings.RoundDuration, roundExpired{gen: r.gen})

	r.broadcastPrompt()
	for _, p := range r.players {
		if p.IsOnline {
			r.sendHand(p)
		}
	}
	r.broadcastTable()
	r.broadcastRoster()
	r.broadcastInfo()

	r.driveBotPlays()
}

// canSubmit reports whether p may still add cards this round.
func (r *Room) canSubmit(p *Player) bool {
	return p != nil && p.IsOnline && p.ID != r.judgeID && !p.HasSubmitted
}

// submitCard moves one card from the hand into the pending selection and
// commits the selection once it holds as many cards as the prompt asks for.
func (r *Room) submitCard(from, card string) {
	if r.state != PhasePlaying {
		r.log.Debug().Str("state", string(r.state)).Msg("play_card ignored: wrong phase")
		return
	}
	_, p := r.playerByID(from)
	if !r.canSubmit(p) {
		r.log.Debug().Str("from", from).Msg("play_card ignored: not allowed")
		return
	}
	i := slices.Index(p.Hand, card)
	if i < 0 {
		r.log.Debug().Str("username", p.Username).Msg("play_card ignored: card not in hand")
		return
	}
	p.Hand = slices.Delete(p.Hand, i, i+1)
	p.Pending = append(p.Pending, card)
	r.sendHand(p)

	if len(p.Pending) >= r.prompt.Pick {
		r.commit(p)
	}
	r.broadcastTable()
	r.broadcastRoster()
	r.checkAllPlayed()
}

func (r *Room) commit(p *Player) {
	r.submissions = append(r.submissions, &CardGroup{Cards: p.Pending, OwnerID: p.ID})
	p.Pending = nil
	p.HasSubmitted = true
}

func (r *Room) drawExtraCard(from string) {
	if r.state != PhasePlaying {
		return
	}
	_, p := r.playerByID(from)
	if !r.canSubmit(p) || p.DrawRights <= 0 {
		r.log.Debug().Str("from", from).Msg("draw_card ignored")
		return
	}
	p.DrawRights--
	p.Hand = append(p.Hand, r.answers.Draw())
	r.sendHand(p)
	r.broadcastRoster()
}

// eligibleCount is the number of players expected to submit this round.
func (r *Room) eligibleCount() int {
	n := 0
	for _, p := range r.players {
		if p.IsOnline && p.ID != r.judgeID {
			n++
		}
	}
	return n
}

// checkAllPlayed ends PLAYING early once every eligible player has submitted.
func (r *Room) checkAllPlayed() {
	if r.state != PhasePlaying {
		return
	}
	if n := r.eligibleCount(); n > 0 && len(r.submissions) >= n {
		r.startJudging()
	}
}

func (r *Room) onRoundExpired(gen uint64) {
	if gen != r.gen || r.state != PhasePlaying {
		return
	}
	r.log.Debug().Int("round", r.round).Msg("round timer expired")
	r.autoComplete()
	r.startJudging()
}

// autoComplete fills missing submissions from each late player's hand at
// random. Short hands produce partial submissions.
func (r *Room) autoComplete() {
	for _, p := range r.players {
		if !r.canSubmit(p) {
			continue
		}
		for len(p.Pending) < r.prompt.Pick && len(p.Hand) > 0 {
			i := r.rng.Intn(len(p.Hand))
			p.Pending = append(p.Pending, p.Hand[i])
			p.Hand = slices.Delete(p.Hand, i, i+1)
		}
		if len(p.Pending) == 0 {
			continue
		}
		r.commit(p)
		r.sendHand(p)
	}
}

func (r *Room) forceFinish(from string) {
	if r.state != PhasePlaying || !r.isAdmin(from) {
		r.log.Debug().Str("from", from).Msg("force_finish_voting ignored")
		return
	}
	r.log.Info().Int("submissions", len(r.submissions)).Msg("voting forced to finish")
	r.startJudging()
}

// startJudging arms no timer: JUDGING waits for the judge. An admin can kick
// a judge who went offline, which hands the table to the next online player.
func (r *Room) startJudging() {
	r.enter(PhaseJudging)
	for _, p := range r.players {
		p.Pending = nil
	}
	r.rng.Shuffle(len(r.submissions), func(i, j int) {
		r.submissions[i], r.submissions[j] = r.submissions[j], r.submissions[i]
	})

	if len(r.submissions) == 0 {
		r.log.Info().Int("round", r.round).Msg("no submissions, skipping judging")
		r.finishRound(nil)
		return
	}

	r.broadcastInfo()
	r.broadcastTable()
	r.broadcastRoster()
	r.driveBotJudge()
}

// reveal turns the given submissions face up. The bot judge reveals the
// whole table in one call.
func (r *Room) reveal(from string, indexes ...int) {
	if r.state != PhaseJudging || from == "" || from != r.judgeID {
		r.log.Debug().Str("from", from).Msg("reveal_card ignored")
		return
	}
	changed := false
	for _, i := range indexes {
		if i < 0 || i >= len(r.submissions) {
			r.log.Info().Int("index", i).Msg("reveal_card ignored: index out of range")
			continue
		}
		if !r.submissions[i].Revealed {
			r.submissions[i].Revealed = true
			changed = true
		}
	}
	if changed {
		r.broadcastTable()
	}
}

func (r *Room) pickWinner(from string, index int) {
	if r.state != PhaseJudging || from == "" || from != r.judgeID {
		r.log.Debug().Str("from", from).Msg("pick_winner ignored")
		return
	}
	if index < 0 || index >= len(r.submissions) {
		r.log.Info().Int("index", index).Int("submissions", len(r.submissions)).Msg("pick_winner ignored: index out of range")
		return
	}
	_, winner := r.playerByID(r.submissions[index].OwnerID)
	r.finishRound(winner)
}

// finishRound enters RESULT, scores the winner if any and arms the
// auto-advance.
func (r *Room) finishRound(winner *Player) {
	r.enter(PhaseResult)
	r.winnerID = ""
	if winner != nil {
		winner.Score++
		r.winnerID = winner.ID
		r.log.Info().Str("winner", winner.Username).Int("score", winner.Score).Int("round", r.round).Msg("round won")
	}
	for _, g := range r.submissions {
		g.Revealed = true
	}
	r.startTimer(r.timings.ResultDelay, resultExpired{gen: r.gen})

	r.broadcastRoster()
	r.broadcastInfo()
	r.broadcastTable()
}

func (r *Room) onResultExpired(gen uint64) {
	if gen != r.gen || r.state != PhaseResult {
		return
	}
	if _, w := r.playerByID(r.winnerID); w != nil && w.Score >= r.settings.TargetScore {
		r.enter(PhaseGameOver)
		r.log.Info().Str("winner", w.Username).Int("round", r.round).Msg("game over")
		r.broadcastInfo()
		return
	}
	r.round++
	if _, j := r.playerByID(r.judgeID); !r.judgeCarried || j == nil || !j.IsOnline {
		r.rotateJudge()
	}
	r.judgeCarried = false
	r.startRound()
}

func (r *Room) returnToLobby(from string) {
	if r.state != PhaseGameOver || !r.isAdmin(from) {
		r.log.Debug().Str("from", from).Msg("return_to_lobby ignored")
		return
	}
	r.enter(PhaseLobby)
	r.round = 1
	r.submissions = nil
	r.prompt = Prompt{}
	r.judgeID = ""
	r.judgeIndex = 0
	r.judgeCarried = false
	r.winnerID = ""
	for _, p := range r.players {
		p.Score = 0
		p.Hand = nil
		p.Pending = nil
		p.HasSubmitted = false
		p.IsJudge = false
		p.DrawRights = r.rules.DrawRights
	}
	r.answers.Reset()
	r.prompts.Reset()

	r.broadcastInfo()
	r.broadcastRoster()
	r.broadcastTable()
	for _, p := range r.players {
		if p.IsOnline {
			r.sendHand(p)
		}
	}
}

// updateSettings applies to the next round; a running timer keeps its deadline.
func (r *Room) updateSettings(from string, u UpdateSettings) {
	if !r.isAdmin(from) {
		r.log.Debug().Str("from", from).Msg("update_settings ignored: not admin")
		return
	}
	if u.TargetScore >= 1 {
		r.settings.TargetScore = u.TargetScore
	}
	if u.RoundDurationMs > 0 {
		r.settings.RoundDuration = time.Duration(u.RoundDurationMs) * time.Millisecond
	}
	r.broadcastInfo()
}
