package main

import (
	"fmt"

	"github.com/bluebird3624/install-agent/internal/conversation"
	"github.com/bluebird3624/install-agent/internal/storage"
	"github.com/spf13/cobra"
)

var (
	historyList       bool
	historyShowName   string
	historyDeleteName string
)

func getHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Manage saved conversations",
		Long:  "List saved conversations, or show or delete one by file name",
		RunE:  runHistory,
	}

	cmd.Flags().BoolVarP(&historyList, "list", "l", false, "List saved conversations")
	cmd.Flags().StringVarP(&historyShowName, "show", "s", "", "Show a saved conversation")
	cmd.Flags().StringVarP(&historyDeleteName, "delete", "d", "", "Delete a saved conversation")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	dir, err := storage.ConversationsDir()
	if err != nil {
		return err
	}
	store := conversation.NewStore(dir)

	if historyList {
		return runListConversations(store)
	}
	if historyShowName != "" {
		return runShowConversation(store, historyShowName)
	}
	if historyDeleteName != "" {
		return runDeleteConversation(store, historyDeleteName)
	}
	return runListConversations(store)
}

func runListConversations(store *conversation.Store) error {
	histories, err := store.List()
	if err != nil {
		return err
	}

	if len(histories) == 0 {
		fmt.Println("No saved conversations")
		return nil
	}

	for _, h := range histories {
		fmt.Printf("  %s  %d messages  %s\n",
			h.Name,
			len(h.Messages),
			h.UpdatedAt.Format("2006-01-02 15:04"),
		)
	}
	return nil
}

func runShowConversation(store *conversation.Store, name string) error {
	h, err := store.Load(name)
	if err != nil {
		return fmt.Errorf("conversation not found: %w", err)
	}

	fmt.Printf("Conversation: %s\n", h.Name)
	fmt.Printf("Created: %s\n", h.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Messages: %d\n\n", len(h.Messages))

	for _, msg := range h.Messages {
		fmt.Printf("[%s]: %s\n\n", msg.Role, msg.Content)
	}
	return nil
}

func runDeleteConversation(store *conversation.Store, name string) error {
	if err := store.Delete(name); err != nil {
		return fmt.Errorf("failed to delete: %w", err)
	}
	fmt.Printf("✓ Conversation deleted: %s\n", name)
	return nil
}
