package testutil

// LineLayout is a single world with a straight east-west line, a destination
// at each end and a train parked at the west end.
const LineLayout = `
settings {
  tick_interval = "10ms"
  tick_budget   = "5ms"
  max_ticks     = 50
}

world "main" {
  track "line" {
    points = [[0, 64, 0], [20, 64, 0]]
  }

  sign "destination" {
    at   = [0, 64, 0]
    args = ["west"]
  }

  sign "destination" {
    at   = [20, 64, 0]
    args = ["east"]
  }
}

route "shuttle" {
  destinations = ["east", "west"]
}

train "t1" {
  world     = "main"
  at        = [1, 64, 0]
  direction = "east"
  route     = "shuttle"
}
`

// JunctionLayout is a line with a switchable branch: a switcher at (10,0)
// leads either further east to "east" or south to "south".
const JunctionLayout = `
world "main" {
  track "main" {
    points = [[0, 64, 0], [20, 64, 0]]
  }

  track "branch" {
    points = [[10, 64, 0], [10, 64, 10]]
  }

  sign "destination" {
    at   = [0, 64, 0]
    args = ["west"]
  }

  sign "destination" {
    at   = [20, 64, 0]
    args = ["east"]
  }

  sign "destination" {
    at   = [10, 64, 10]
    args = ["south"]
  }

  sign "switcher" {
    at = [10, 64, 0]
  }
}
`
