package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tictactoe/game"
)

func TestSinglePass(t *testing.T) {
	m := NewMCTS(WithIterations(1), WithSeed(1))

	tr, err := m.buildTree(game.NewBoard())

	require.NoError(t, err)
	require.Equal(t, 2, tr.size(), "One pass should add exactly one node")
	root := tr.nodes[0]
	require.Equal(t, 1, root.visits, "Root should be visited once")
	require.Len(t, root.children, 1, "Root should own exactly one child")
	child := tr.nodes[root.children[0]]
	require.Equal(t, 1, child.visits)
	require.Equal(t, -child.rewards, root.rewards, "Root reward should be the negated child reward")
}

func TestSelectMoveOneIteration(t *testing.T) {
	board := game.NewBoard()

	move, next, err := SelectMove(board, 1, WithSeed(3))

	require.NoError(t, err)
	require.Equal(t, game.Coord{Row: 2, Col: 2}, move, "The only expanded child should be chosen")
	require.Equal(t, game.PlayerA, next.At(move), "Resulting board should hold the move")
	require.Equal(t, game.Empty, board.At(move), "Input board should be unchanged")
	require.Equal(t, game.PlayerB, next.NextPlayer())
}

func TestSearchFinishedBoard(t *testing.T) {
	t.Run("won board", func(t *testing.T) {
		board := mustBoard(t, [game.Size][game.Size]game.Cell{
			{game.PlayerA, game.PlayerA, game.PlayerA},
			{game.PlayerB, game.PlayerB, game.Empty},
			{game.Empty, game.Empty, game.Empty},
		})

		_, _, err := NewMCTS().Search(board)

		require.ErrorIs(t, err, game.ErrInvalidState)
	})

	t.Run("drawn board", func(t *testing.T) {
		board := mustBoard(t, [game.Size][game.Size]game.Cell{
			{game.PlayerA, game.PlayerB, game.PlayerA},
			{game.PlayerA, game.PlayerB, game.PlayerB},
			{game.PlayerB, game.PlayerA, game.PlayerA},
		})

		_, _, err := SelectMove(board, 10)

		require.ErrorIs(t, err, game.ErrInvalidState)
	})
}

func TestSearchDeterminism(t *testing.T) {
	t.Run("first move rollout", func(t *testing.T) {
		board := game.NewBoard()
		for ply := 0; ply < 4; ply++ {
			move1, next1, err := SelectMove(board, 300, WithRolloutPolicy(FirstMoveRollout))
			require.NoError(t, err)
			move2, _, err := SelectMove(board, 300, WithRolloutPolicy(FirstMoveRollout))
			require.NoError(t, err)

			require.Equal(t, move1, move2, "Identical runs should choose identical moves at ply %d", ply)
			board = next1
		}
	})

	t.Run("seeded random rollout", func(t *testing.T) {
		board := game.NewBoard()

		move1, _, err := SelectMove(board, 500, WithSeed(99))
		require.NoError(t, err)
		move2, _, err := SelectMove(board, 500, WithSeed(99))
		require.NoError(t, err)

		require.Equal(t, move1, move2)
	})
}

func TestSearchConvergence(t *testing.T) {
	t.Run("blocking an immediate threat", func(t *testing.T) {
		// PlayerA threatens the top row; PlayerB must take (0,2).
		board := mustBoard(t, [game.Size][game.Size]game.Cell{
			{game.PlayerA, game.PlayerA, game.Empty},
			{game.Empty, game.PlayerB, game.Empty},
			{game.Empty, game.Empty, game.Empty},
		})
		for seed := uint64(1); seed <= 5; seed++ {
			move, _, err := SelectMove(board, 5000, WithSeed(seed))

			require.NoError(t, err)
			require.Equal(t, game.Coord{Row: 0, Col: 2}, move, "seed %d", seed)
		}
	})

	t.Run("taking an immediate win", func(t *testing.T) {
		board := mustBoard(t, [game.Size][game.Size]game.Cell{
			{game.PlayerA, game.PlayerB, game.PlayerB},
			{game.Empty, game.PlayerA, game.Empty},
			{game.Empty, game.Empty, game.Empty},
		})
		for seed := uint64(1); seed <= 5; seed++ {
			move, next, err := SelectMove(board, 5000, WithSeed(seed))

			require.NoError(t, err)
			require.Equal(t, game.Coord{Row: 2, Col: 2}, move, "seed %d", seed)
			require.Equal(t, game.PlayerAWins, next.Classify())
		}
	})

	t.Run("blocking as PlayerA", func(t *testing.T) {
		// PlayerB threatens the middle column; PlayerA must take (2,1).
		board := mustBoard(t, [game.Size][game.Size]game.Cell{
			{game.PlayerA, game.PlayerB, game.Empty},
			{game.Empty, game.PlayerB, game.Empty},
			{game.Empty, game.Empty, game.PlayerA},
		})
		for seed := uint64(1); seed <= 5; seed++ {
			move, _, err := SelectMove(board, 5000, WithSeed(seed))

			require.NoError(t, err)
			require.Equal(t, game.Coord{Row: 2, Col: 1}, move, "seed %d", seed)
		}
	})
}

func TestSearchMetrics(t *testing.T) {
	m := NewMCTS(WithIterations(5), WithSeed(5), WithMetrics())

	_, metric, err := m.Search(game.NewBoard())

	require.NoError(t, err)
	require.Equal(t, 5, metric.Iterations)
	require.Equal(t, 5, metric.Episodes)
	require.Equal(t, 5, metric.FullPlayouts, "Every tic-tac-toe rollout reaches the end of the game")
	require.Equal(t, 6, metric.TreeSize, "Each of the first iterations should add one node")
}

func TestSearchPolicy(t *testing.T) {
	m := NewMCTS(WithIterations(200), WithSeed(11))

	tr, err := m.buildTree(game.NewBoard())
	require.NoError(t, err)

	policy := tr.policy()
	require.Len(t, policy, 9, "200 iterations should expand every root move")
	total := 0.0
	for _, share := range policy {
		total += share
	}
	require.InDelta(t, 1.0, total, 1e-9, "Root visits should be split among its children")
}

func TestOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		m := NewMCTS()

		require.Equal(t, DefaultIterations, m.Iterations())
		require.InDelta(t, 2.0, m.cSquared, 1e-12)
		require.NotNil(t, m.rollout)
	})

	t.Run("ignoring invalid values", func(t *testing.T) {
		m := NewMCTS(WithIterations(0), WithIterations(-4), WithExploration(-1), WithRolloutPolicy(nil))

		require.Equal(t, DefaultIterations, m.Iterations())
		require.InDelta(t, 2.0, m.cSquared, 1e-12)
	})

	t.Run("overriding values", func(t *testing.T) {
		m := NewMCTS(WithIterations(42), WithExploration(0.5))

		require.Equal(t, 42, m.Iterations())
		require.InDelta(t, 0.25, m.cSquared, 1e-12)
	})
}
