package main

const custodiaBanner = `
   ______           __            ___
  / ____/_  _______/ /_____  ____/ (_)___ _
 / /   / / / / ___/ __/ __ \/ __  / / __ ` + "`" + `/
/ /___/ /_/ (__  ) /_/ /_/ / /_/ / / /_/ /
\____/\__,_/____/\__/\____/\__,_/_/\__,_/
       multi-party governance engine
`
