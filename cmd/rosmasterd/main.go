// Command rosmasterd runs the ROS master and parameter server.
package main

import "github.com/rosmaster-go/rosmaster/cmd"

func main() {
	cmd.Execute()
}
