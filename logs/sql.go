package logs

const createGameTable = `
CREATE TABLE IF NOT EXISTS games (
  id text primary key,
  time datetime,
  player_x varchar,
  player_o varchar,
  winner string,
  moves int,
  record text
)`

const createPlayerView = `
CREATE VIEW IF NOT EXISTS player_games (
  id, time, player, opponent, color, result, moves
) AS
SELECT id, time, player_x, player_o, 'x',
       CASE winner WHEN 'x' THEN 'win' WHEN 'o' THEN 'lose' ELSE 'draw' END,
       moves
 FROM games
UNION ALL
SELECT id, time, player_o, player_x, 'o',
       CASE winner WHEN 'o' THEN 'win' WHEN 'x' THEN 'lose' ELSE 'draw' END,
       moves
 FROM games
`

const insertStmt = `
INSERT INTO games (id, time, player_x, player_o, winner, moves, record)
VALUES (:id, :time, :player_x, :player_o, :winner, :moves, :record)
`

const statsQuery = `
SELECT
  COUNT(*) AS games,
  COALESCE(SUM(result = 'win'), 0) AS wins,
  COALESCE(SUM(result = 'lose'), 0) AS losses,
  COALESCE(SUM(result = 'draw'), 0) AS draws,
  COALESCE(SUM(moves), 0) AS moves
FROM player_games
WHERE player = ?
`

const recentQuery = `
SELECT id, time, player_x, player_o, winner, moves, record
FROM games
ORDER BY time DESC, id
LIMIT ?
`
