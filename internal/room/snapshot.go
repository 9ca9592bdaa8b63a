package room

import (
	"slices"

	"party-cards/internal/shared"
)

// HiddenCard stands in for the text of an unrevealed card.
const HiddenCard = "HIDDEN"

func (r *Room) rosterView() []shared.PlayerView {
	out := make([]shared.PlayerView, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, shared.PlayerView{
			ID:           p.ID,
			Username:     p.Username,
			Avatar:       p.Avatar,
			Score:        p.Score,
			HandSize:     len(p.Hand),
			DrawRights:   p.DrawRights,
			HasSubmitted: p.HasSubmitted,
			IsJudge:      p.IsJudge,
			IsOnline:     p.IsOnline,
			IsAdmin:      r.isAdmin(p.ID),
			IsBot:        p.IsBot,
		})
	}
	return out
}

func (r *Room) infoView() shared.InfoView {
	v := shared.InfoView{
		State:           string(r.state),
		Round:           r.round,
		TargetScore:     r.settings.TargetScore,
		RoundDurationMs: r.settings.RoundDuration.Milliseconds(),
		JudgeID:         r.judgeID,
	}
	if r.timerDeadline != nil {
		ms := r.timerDeadline.UnixMilli()
		v.TimerEnd = &ms
	}
	if r.state == PhaseResult || r.state == PhaseGameOver {
		v.WinnerID = r.winnerID
	}
	return v
}

func (r *Room) tableView() []shared.GroupView {
	out := make([]shared.GroupView, 0, len(r.submissions))
	for _, g := range r.submissions {
		v := shared.GroupView{Revealed: g.Revealed, OwnerID: g.OwnerID}
		if g.Revealed {
			v.Cards = slices.Clone(g.Cards)
		} else {
			v.Cards = make([]string, len(g.Cards))
			for i := range v.Cards {
				v.Cards[i] = HiddenCard
			}
			if r.rules.HideUnrevealedOwners {
				v.OwnerID = ""
			}
		}
		out = append(out, v)
	}
	return out
}

func (r *Room) promptView() shared.PromptView {
	return shared.PromptView{Text: r.prompt.Text, Pick: r.prompt.Pick}
}

func (r *Room) broadcastRoster() { r.out.Broadcast(r.code, ActionUserList, r.rosterView()) }
func (r *Room) broadcastInfo()   { r.out.Broadcast(r.code, ActionGameInfo, r.infoView()) }
func (r *Room) broadcastTable()  { r.out.Broadcast(r.code, ActionTable, r.tableView()) }
func (r *Room) broadcastPrompt() { r.out.Broadcast(r.code, ActionPrompt, r.promptView()) }

// sendHand pushes p's own hand to p only.
func (r *Room) sendHand(p *Player) {
	if p == nil || p.IsBot || !p.IsOnline {
		return
	}
	hand := slices.Clone(p.Hand)
	if hand == nil {
		hand = []string{}
	}
	r.out.Send(p.ID, ActionHand, hand)
}

// replay brings a (re)joining player up to date with the running game.
func (r *Room) replay(p *Player) {
	r.sendHand(p)
	r.out.Send(p.ID, ActionPrompt, r.promptView())
	r.out.Send(p.ID, ActionTable, r.tableView())
}

func (r *Room) summary() shared.RoomSummary {
	s := shared.RoomSummary{
		Code:      r.code,
		State:     string(r.state),
		Round:     r.round,
		Players:   len(r.players),
		Protected: r.accessCode != "",
		Info:      r.infoView(),
	}
	for _, p := range r.players {
		if p.IsOnline {
			s.Online++
		}
		if p.IsBot {
			s.Bots++
		}
	}
	return s
}
