// Package fantrax reads completed trades from a Fantrax league and maps them onto the valuation table.
package fantrax

import (
	"fmt"

	"github.com/pmurley/go-fantrax/auth_client"
	"github.com/pmurley/go-fantrax/models"
)

type Client struct {
	Client   *auth_client.Client
	LeagueId string
}

func NewFantraxClient(leagueId string, useCache bool) (*Client, error) {
	client, err := auth_client.NewClient(leagueId, useCache)
	if err != nil {
		return nil, fmt.Errorf("failed to create Fantrax client for league %s: %w", leagueId, err)
	}
	return &Client{
		Client:   client,
		LeagueId: leagueId,
	}, nil
}

// GetTransactionsFromFantrax returns every league transaction, trades included
func (c *Client) GetTransactionsFromFantrax() ([]models.Transaction, error) {
	transactions, err := c.Client.GetAllTransactionsIncludingTrades()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	return transactions, nil
}

// GetCompletedTrades fetches the league transactions and groups the trades
func (c *Client) GetCompletedTrades() ([]CompletedTrade, error) {
	transactions, err := c.GetTransactionsFromFantrax()
	if err != nil {
		return nil, err
	}
	return GroupTrades(transactions), nil
}
