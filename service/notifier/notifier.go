package notifier

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/faromarket/goapi/base/ctx"
	"github.com/faromarket/goapi/base/pricefmt"
	"github.com/faromarket/goapi/domain/auction"
)

// Notifier announces auction milestones to the community channel. The noop
// variant is used when no bot key is configured.
type Notifier interface {
	NotifyCreated(c ctx.Ctx, a *auction.Auction)
	NotifySettled(c ctx.Ctx, a *auction.Auction)
}

type Config struct {
	DiscordBotKey    string
	DiscordChannelId string
}

type impl struct {
	channelId string
	discord   *discordgo.Session
}

func New(cfg Config) (Notifier, error) {
	if cfg.DiscordBotKey == "" {
		return &noop{}, nil
	}
	discord, err := discordgo.New(fmt.Sprintf("Bot %s", cfg.DiscordBotKey))
	if err != nil {
		return nil, err
	}
	return &impl{channelId: cfg.DiscordChannelId, discord: discord}, nil
}

func (im *impl) NotifyCreated(c ctx.Ctx, a *auction.Auction) {
	msg := &discordgo.MessageEmbed{
		Title:       "New auction!",
		Description: fmt.Sprintf("%s #%s", a.ContractAddress, a.TokenId),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Owner", Value: string(a.Owner)},
			{Name: "Floor price", Value: pricefmt.ToDisplayFromString(a.FloorPrice)},
		},
	}
	if _, err := im.discord.ChannelMessageSendEmbed(im.channelId, msg); err != nil {
		c.WithField("err", err).Warn("discord.ChannelMessageSendEmbed failed")
	}
}

func (im *impl) NotifySettled(c ctx.Ctx, a *auction.Auction) {
	msg := &discordgo.MessageEmbed{
		Title:       "Auction ended!",
		Description: fmt.Sprintf("%s #%s", a.ContractAddress, a.TokenId),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Winner", Value: string(a.HighestBidder)},
			{Name: "Winning bid", Value: pricefmt.ToDisplayFromString(a.HighestBindingBid)},
		},
	}
	if _, err := im.discord.ChannelMessageSendEmbed(im.channelId, msg); err != nil {
		c.WithField("err", err).Warn("discord.ChannelMessageSendEmbed failed")
	}
}

type noop struct{}

func (n *noop) NotifyCreated(ctx.Ctx, *auction.Auction) {}
func (n *noop) NotifySettled(ctx.Ctx, *auction.Auction) {}
