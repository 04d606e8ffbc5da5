package main

import (
	"image/color"

	"github.com/harbdog/raycaster-go/geom"

	"arenagame/audio"
	"arenagame/model"
	"arenagame/netclient"
	"arenagame/protocol"
	"arenagame/texture"
	"arenagame/vmath"
)

const (
	// server positions further than this from the last report are adopted
	correctionDistance = 64
	remoteScale        = 0.7
)

var remoteTint = color.RGBA{140, 180, 255, 255}

func (g *Game) online() bool {
	return g.net != nil
}

func (g *Game) localInfo() protocol.PlayerInfo {
	p := g.level.Player
	return protocol.PlayerInfo{
		ID: p.ID, X: p.Position.X, Y: p.Position.Y, Rotation: p.Rotation,
		Health: p.Health, MaxHealth: p.MaxHealth, Ammo: p.Ammo, Score: p.Score, Alive: p.Alive,
	}
}

// stepOnline moves the local player and reports it; shots go to the server
// which owns every projectile
func (g *Game) stepOnline(dt float64, in model.Input) []model.Event {
	shoot := in.Shoot
	in.Shoot = false
	events := g.level.Step(dt, in)

	p := g.level.Player
	if shoot {
		if _, ok := p.Shoot(""); ok {
			if err := g.net.Send(protocol.NewShoot(p.Position.X, p.Position.Y, p.Rotation)); err != nil {
				g.log.WithError(err).Debug("shoot not sent")
			}
			events = append(events, model.Event{Kind: model.EventShot, Position: p.Position})
		}
	}
	g.sendUpdate()
	return events
}

// sendUpdate reports the local player, paced to the server's movement limit
func (g *Game) sendUpdate() {
	info := g.localInfo()
	pos := g.pacer.Next(g.level.Player.Position)
	info.X, info.Y = pos.X, pos.Y
	if err := g.net.SendUpdate(info); err != nil {
		g.log.WithError(err).Debug("update not sent")
	}
}

// pollNetwork applies everything the server sent since the last frame
func (g *Game) pollNetwork() {
	p := g.level.Player
	for _, msg := range g.net.Poll() {
		for _, ev := range g.mirror.Apply(msg) {
			switch ev.Kind {
			case netclient.Joined:
				p.ID = g.mirror.ID
				p.Position = geom.Vector2{X: ev.Info.X, Y: ev.Info.Y}
				p.Rotation = ev.Info.Rotation
				p.Moved = true
				g.pacer.Reset(p.Position)
				g.log = g.log.WithField("player_id", p.ID)
				g.log.Info("joined server")
			case netclient.Self:
				p.SetHealth(ev.Info.Health)
				p.Alive = ev.Info.Alive
				p.Ammo = ev.Info.Ammo
				p.Score = ev.Info.Score
				server := geom.Vector2{X: ev.Info.X, Y: ev.Info.Y}
				if vmath.Distance(server, g.pacer.Reported()) > correctionDistance {
					p.Position = server
					p.Moved = true
					g.pacer.Reset(server)
				}
			case netclient.Damaged:
				g.handleEvents([]model.Event{{Kind: model.EventPlayerHurt, Position: p.Position}})
			case netclient.Died:
				g.handleEvents([]model.Event{{Kind: model.EventPlayerDied, Position: p.Position}})
			case netclient.Respawned:
				p.Respawn(geom.Vector2{X: ev.Info.X, Y: ev.Info.Y}, ev.Info.Rotation)
				g.pacer.Reset(p.Position)
				if g.state == stateDead {
					g.setState(statePlaying)
				}
			case netclient.Scored:
				g.crosshairs.ActivateHitIndicator(hitIndicatorTime)
				g.audio.Play(audio.Explosion, 1)
			case netclient.ChatReceived:
				g.hud.AddChat(ev.From, ev.Text)
			case netclient.ServerError:
				g.log.WithField("message", ev.Text).Warn("server error")
				g.hud.AddChat("server", ev.Text)
			}
		}
	}
	g.remotes = g.mirror.Remotes
	g.serverProjectiles = g.mirror.Projectiles

	if !g.net.Connected() {
		g.log.WithError(g.net.Err()).Warn("disconnected, continuing offline")
		g.hud.AddChat("server", "connection lost")
		g.net = nil
		g.remotes = nil
		g.serverProjectiles = nil
	}
}

func (g *Game) sendChat(msg string) {
	if !g.online() || msg == "" {
		return
	}
	if err := g.net.Send(protocol.NewChat("", msg)); err != nil {
		g.log.WithError(err).Debug("chat not sent")
	}
}

func (g *Game) appendRemotePlayers(out []billboard) []billboard {
	if !g.online() {
		return out
	}
	for _, id := range g.mirror.RemoteIDs() {
		r := g.remotes[id]
		if !r.Alive {
			continue
		}
		b := newBillboard(geom.Vector2{X: r.X, Y: r.Y}, g.tex.Frame(texture.EnemySprite, 0), remoteScale)
		b.Tint = remoteTint
		out = append(out, b)
	}
	return out
}
