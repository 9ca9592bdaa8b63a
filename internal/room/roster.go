package room

import (
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
)

const defaultAvatar = "🦁"

func (r *Room) playerByID(id string) (int, *Player) {
	if id == "" {
		return -1, nil
	}
	for i, p := range r.players {
		if p.ID == id {
			return i, p
		}
	}
	return -1, nil
}

func (r *Room) playerByName(username string) (int, *Player) {
	for i, p := range r.players {
		if p.Username == username {
			return i, p
		}
	}
	return -1, nil
}

// isAdmin is the single place admin rights are derived from.
func (r *Room) isAdmin(id string) bool {
	return id != "" && id == r.adminID
}

func (r *Room) onlinePlayers() []*Player {
	var out []*Player
	for _, p := range r.players {
		if p.IsOnline {
			out = append(out, p)
		}
	}
	return out
}

func (r *Room) hasOnlineHuman() bool {
	for _, p := range r.players {
		if p.IsOnline && !p.IsBot {
			return true
		}
	}
	return false
}

func (r *Room) join(connID string, j Join) {
	username := strings.TrimSpace(j.Username)
	if connID == "" || username == "" {
		r.reject(connID, "username required")
		return
	}
	if len(r.players) == 0 && r.accessCode == "" {
		r.accessCode = j.AccessCode
	}
	if r.accessCode != "" && j.AccessCode != r.accessCode {
		r.log.Info().Str("username", username).Msg("join rejected: wrong access code")
		r.reject(connID, "wrong access code")
		return
	}

	if _, bound := r.playerByID(connID); bound != nil && bound.Username != username {
		r.log.Info().Str("username", username).Str("id", connID).Msg("join rejected: connection already seated")
		r.out.Send(connID, ActionJoinRejected, gin.H{"reason": "already joined"})
		return
	}

	_, p := r.playerByName(username)
	switch {
	case p != nil && p.IsBot:
		r.reject(connID, "username taken")
		return
	case p != nil:
		r.log.Info().Str("username", username).Str("old", p.ID).Str("new", connID).Msg("player rejoined")
		if p.IsOnline && p.ID != connID {
			r.out.Detach(r.code, p.ID)
		}
		r.rebind(p, connID)
		p.IsOnline = true
		if j.Avatar != "" {
			p.Avatar = j.Avatar
		}
	default:
		avatar := j.Avatar
		if avatar == "" {
			avatar = defaultAvatar
		}
		p = &Player{
			ID:         connID,
			Username:   username,
			Avatar:     avatar,
			DrawRights: r.rules.DrawRights,
			IsOnline:   true,
		}
		r.players = append(r.players, p)
		r.log.Info().Str("username", username).Str("id", connID).Msg("player joined")
	}

	r.out.Attach(r.code, connID)

	if r.state != PhaseLobby {
		r.topUp(p)
		if r.judgeID == "" && (r.state == PhasePlaying || r.state == PhaseJudging) {
			r.resolveJudge()
		}
	}
	r.rebindAdmin()

	r.broadcastRoster()
	r.broadcastInfo()
	if r.state != PhaseLobby {
		r.replay(p)
	}
}

func (r *Room) reject(connID, reason string) {
	if connID == "" {
		return
	}
	r.out.Send(connID, ActionJoinRejected, gin.H{"reason": reason})
	r.out.Detach(r.code, connID)
}

// rebind moves a player to a new connection identity, carrying every
// reference to the old one along.
func (r *Room) rebind(p *Player, connID string) {
	old := p.ID
	p.ID = connID
	if r.judgeID == old {
		r.judgeID = connID
	}
	if r.adminID == old {
		r.adminID = connID
	}
	if r.winnerID == old {
		r.winnerID = connID
	}
	for _, g := range r.submissions {
		if g.OwnerID == old {
			g.OwnerID = connID
		}
	}
}

// rebindAdmin keeps the admin on an online player, preferring humans. It
// runs after every roster change.
func (r *Room) rebindAdmin() {
	_, admin := r.playerByID(r.adminID)
	humanOnline := r.hasOnlineHuman()
	if admin != nil && admin.IsOnline && (!admin.IsBot || !humanOnline) {
		return
	}
	for _, p := range r.players {
		if p.IsOnline && (!p.IsBot || !humanOnline) {
			if p.ID != r.adminID {
				r.log.Info().Str("username", p.Username).Msg("admin reassigned")
			}
			r.adminID = p.ID
			return
		}
	}
	if admin == nil {
		r.adminID = ""
	}
}

func (r *Room) markOffline(connID string) {
	_, p := r.playerByID(connID)
	if p == nil || !p.IsOnline {
		return
	}
	p.IsOnline = false
	r.log.Info().Str("username", p.Username).Msg("player offline")
	r.rebindAdmin()
	r.broadcastRoster()
	if r.state == PhasePlaying {
		r.checkAllPlayed()
	}
}

func (r *Room) kick(from, username string) {
	if !r.isAdmin(from) {
		r.log.Debug().Str("from", from).Msg("kick ignored: not admin")
		return
	}
	idx, p := r.playerByName(username)
	if p == nil {
		r.log.Info().Str("username", username).Msg("kick ignored: no such player")
		return
	}

	r.players = slices.Delete(r.players, idx, idx+1)
	if p.IsOnline && !p.IsBot {
		r.out.Send(p.ID, ActionKicked, nil)
		r.out.Detach(r.code, p.ID)
	}
	r.log.Info().Str("username", username).Msg("player kicked")

	if idx <= r.judgeIndex {
		r.judgeIndex--
	}
	tableChanged := false
	if r.state == PhasePlaying {
		before := len(r.submissions)
		r.submissions = slices.DeleteFunc(r.submissions, func(g *CardGroup) bool { return g.OwnerID == p.ID })
		tableChanged = len(r.submissions) != before
	}
	judgeChanged := false
	if p.ID == r.judgeID {
		r.judgeID = ""
		judgeChanged = true
		switch r.state {
		case PhasePlaying, PhaseJudging:
			r.resolveJudge()
			tableChanged = true
		case PhaseResult, PhaseGameOver:
			// the successor holds the seat now and judges the next round
			r.rotateJudge()
			r.applyJudgeFlags()
			r.judgeCarried = r.judgeID != ""
		}
	}
	r.rebindAdmin()

	r.broadcastRoster()
	if judgeChanged {
		r.broadcastInfo()
	}
	if tableChanged {
		r.broadcastTable()
	}
	if r.state == PhasePlaying {
		r.checkAllPlayed()
	}
}

// rotateJudge advances judgeIndex to the next online player in join order.
// With nobody online the judge stays unresolved.
func (r *Room) rotateJudge() {
	n := len(r.players)
	r.judgeID = ""
	if n == 0 {
		r.judgeIndex = 0
		return
	}
	for attempts := 0; attempts < n; attempts++ {
		r.judgeIndex = (r.judgeIndex + 1) % n
		if r.judgeIndex < 0 {
			r.judgeIndex += n
		}
		if p := r.players[r.judgeIndex]; p.IsOnline {
			r.judgeID = p.ID
			return
		}
	}
	r.log.Warn().Msg("no online player to judge")
}

func (r *Room) applyJudgeFlags() {
	for _, p := range r.players {
		p.IsJudge = r.judgeID != "" && p.ID == r.judgeID
	}
}

// resolveJudge picks a judge mid-round after the previous one vanished. A
// new judge in PLAYING gets its cards back; in JUDGING it keeps its own
// submission on the table.
func (r *Room) resolveJudge() {
	r.rotateJudge()
	r.applyJudgeFlags()
	if r.judgeID == "" {
		return
	}
	switch r.state {
	case PhasePlaying:
		_, judge := r.playerByID(r.judgeID)
		r.withdraw(judge)
	case PhaseJudging:
		r.driveBotJudge()
	}
}

func (r *Room) withdraw(p *Player) {
	for i, g := range r.submissions {
		if g.OwnerID == p.ID {
			p.Hand = append(p.Hand, g.Cards...)
			r.submissions = slices.Delete(r.submissions, i, i+1)
			break
		}
	}
	p.Hand = append(p.Hand, p.Pending...)
	p.Pending = nil
	p.HasSubmitted = false
	r.sendHand(p)
}

// topUp deals answer cards until the hand reaches the target size.
func (r *Room) topUp(p *Player) {
	for len(p.Hand) < r.rules.HandSize {
		p.Hand = append(p.Hand, r.answers.Draw())
	}
}
